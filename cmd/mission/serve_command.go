package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local mission dashboard",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default localhost:7727)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := protocolMode(cfg)
	if err != nil {
		return err
	}
	tasks, err := protocolTasks(cfg)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	if addr == "" {
		addr = "localhost:7727"
	}

	handler := web.NewHandler(web.Options{
		Store: store,
		Tasks: tasks,
		Mode:  mode,
	})

	fmt.Printf("Mission dashboard on http://%s\n", addr)
	return http.ListenAndServe(addr, handler)
}
