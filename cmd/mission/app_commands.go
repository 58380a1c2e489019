package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/gemini"
	"github.com/Vanndavid/Mission-Employed/internal/ui"
	"github.com/Vanndavid/Mission-Employed/pipeline"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Track job applications through the pipeline",
}

var appAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new application",
	Args:  cobra.NoArgs,
	RunE:  runAppAdd,
}

var appListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAppList,
}

var appStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move an application to a new pipeline stage",
	Args:  cobra.ExactArgs(2),
	RunE:  runAppStatus,
}

var appRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runAppRm,
}

var appAnalyzeCmd = &cobra.Command{
	Use:   "analyze <id> [file]",
	Short: "Score a job description against the fit criteria",
	Long: `Analyze reads a job description from the given file (or stdin) and asks
Gemini which of the configured fit criteria it meets. The criteria and
reasoning are saved onto the application.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAppAnalyze,
}

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "List the job-fit criteria and target score",
	Args:  cobra.NoArgs,
	RunE:  runCriteria,
}

var (
	appAddCompany  string
	appAddRole     string
	appAddURL      string
	appAddCriteria []string
	appAddNotes    string
	appRmForce     bool
	appListJSON    bool
)

func init() {
	rootCmd.AddCommand(appCmd, criteriaCmd)
	appCmd.AddCommand(appAddCmd, appListCmd, appStatusCmd, appRmCmd, appAnalyzeCmd)

	appAddCmd.Flags().StringVar(&appAddCompany, "company", "", "Company name")
	appAddCmd.Flags().StringVar(&appAddRole, "role", "", "Role title")
	appAddCmd.Flags().StringVar(&appAddURL, "url", "", "Job posting URL")
	appAddCmd.Flags().StringSliceVar(&appAddCriteria, "criteria", nil, "Criterion IDs the posting meets (see 'mission criteria')")
	appAddCmd.Flags().StringVar(&appAddNotes, "notes", "", "Free-form notes")
	appListCmd.Flags().BoolVar(&appListJSON, "json", false, "Output JSON")
	appRmCmd.Flags().BoolVar(&appRmForce, "force", false, "Skip the confirmation prompt")
	addNotesFlagAliases(appAddCmd)
}

func newPipelineManager() (*pipeline.Manager, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	return pipeline.NewManager(store, nil), nil
}

func runAppAdd(cmd *cobra.Command, args []string) error {
	manager, err := newPipelineManager()
	if err != nil {
		return err
	}

	criteria, _, err := manager.Criteria()
	if err != nil {
		return err
	}
	for _, id := range appAddCriteria {
		if !criterionKnown(criteria, id) {
			return fmt.Errorf("unknown criterion %q (run 'mission criteria')", id)
		}
	}

	app, err := manager.Add(pipeline.AddOptions{
		Company:     appAddCompany,
		Role:        appAddRole,
		URL:         appAddURL,
		CriteriaMet: appAddCriteria,
		Notes:       appAddNotes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s - %s (%d/%d criteria met)\n", app.Company, app.Role, app.CriteriaScore, len(criteria))
	return nil
}

func runAppList(cmd *cobra.Command, args []string) error {
	manager, err := newPipelineManager()
	if err != nil {
		return err
	}
	apps, err := manager.List()
	if err != nil {
		return err
	}

	if appListJSON {
		return encodeJSONToStdout(apps)
	}

	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, app.ID)
	}
	prefixLengths := ui.UniqueIDPrefixLengths(ids)

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []string{
			ui.HighlightID(app.ID, ui.PrefixLength(prefixLengths, app.ID)),
			ui.TruncateTableCell(app.Company),
			ui.TruncateTableCell(app.Role),
			string(app.Status),
			fmt.Sprintf("%d", app.CriteriaScore),
			ui.FormatTimeAgeShort(app.DateApplied, timeNow()),
		})
	}
	fmt.Print(ui.FormatTable([]string{"ID", "COMPANY", "ROLE", "STATUS", "SCORE", "APPLIED"}, rows))
	return nil
}

func runAppStatus(cmd *cobra.Command, args []string) error {
	status := pipeline.Status(args[1])
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q (valid: %s)", args[1], joinStatuses(pipeline.ValidStatuses()))
	}

	manager, err := newPipelineManager()
	if err != nil {
		return err
	}
	app, err := manager.UpdateStatus(args[0], status)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s is now %s\n", app.Company, app.Role, app.Status)
	return nil
}

func runAppRm(cmd *cobra.Command, args []string) error {
	manager, err := newPipelineManager()
	if err != nil {
		return err
	}
	deleted, err := manager.Delete(args[0], appRmForce)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println("Aborted.")
		return nil
	}
	fmt.Println("Deleted.")
	return nil
}

func runAppAnalyze(cmd *cobra.Command, args []string) error {
	description, err := readDescription(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("empty job description")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newGeminiClient(cfg)
	if err != nil {
		return err
	}

	manager, err := newPipelineManager()
	if err != nil {
		return err
	}
	criteria, target, err := manager.Criteria()
	if err != nil {
		return err
	}
	if cfg.Pipeline.TargetScore > 0 {
		target = cfg.Pipeline.TargetScore
	}

	geminiCriteria := make([]gemini.Criterion, 0, len(criteria))
	for _, criterion := range criteria {
		geminiCriteria = append(geminiCriteria, gemini.Criterion{ID: criterion.ID, Label: criterion.Label})
	}

	analysis, err := client.AnalyzeJobDescription(cmd.Context(), description, geminiCriteria)
	if err != nil {
		return err
	}

	app, err := manager.ApplyAnalysis(args[0], analysis)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s scores %d/%d (target %d)\n", app.Company, app.Role, app.CriteriaScore, len(criteria), target)
	for _, criterion := range criteria {
		mark := "[ ]"
		if criterionMet(app.CriteriaMet, criterion.ID) {
			mark = "[x]"
		}
		fmt.Printf("  %s %s\n", mark, criterion.Label)
	}
	if strings.TrimSpace(analysis.Reasoning) != "" {
		fmt.Println()
		fmt.Println(analysis.Reasoning)
	}
	return nil
}

func runCriteria(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	manager, err := newPipelineManager()
	if err != nil {
		return err
	}
	criteria, target, err := manager.Criteria()
	if err != nil {
		return err
	}
	if cfg.Pipeline.TargetScore > 0 {
		target = cfg.Pipeline.TargetScore
	}

	rows := make([][]string, 0, len(criteria))
	for _, criterion := range criteria {
		rows = append(rows, []string{criterion.ID, criterion.Label})
	}
	fmt.Print(ui.FormatTable([]string{"ID", "CRITERION"}, rows))
	fmt.Printf("\nTarget score: %d of %d\n", target, len(criteria))
	return nil
}

// readDescription returns the job description from the optional file
// argument, or stdin when no file is given.
func readDescription(args []string) (string, error) {
	if len(args) > 1 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read job description from stdin: %w", err)
	}
	return string(data), nil
}

func criterionKnown(criteria []pipeline.Criterion, id string) bool {
	for _, criterion := range criteria {
		if criterion.ID == id {
			return true
		}
	}
	return false
}

func criterionMet(met []string, id string) bool {
	for _, m := range met {
		if m == id {
			return true
		}
	}
	return false
}

func joinStatuses(statuses []pipeline.Status) string {
	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, string(status))
	}
	return strings.Join(parts, ", ")
}
