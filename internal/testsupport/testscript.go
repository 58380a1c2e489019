package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/Vanndavid/Mission-Employed/dates"
	"github.com/Vanndavid/Mission-Employed/pipeline"
)

var (
	buildOnce   sync.Once
	missionPath string
	buildErr    error
)

// BuildMission builds the mission binary once and returns its path.
func BuildMission(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "mission-bin-")
		if err != nil {
			buildErr = err
			return
		}

		missionPath = filepath.Join(binDir, "mission")
		cmd := exec.Command("go", "build", "-o", missionPath, "./cmd/mission")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build mission: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return missionPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("MISSION", BuildMission(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdAppID finds an application by company name in an exported state file
// and stores its ID in an env var.
func CmdAppID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("appid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: appid FILE COMPANY VAR")
	}

	var exported struct {
		Applications []pipeline.Application `json:"applications"`
	}
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &exported); err != nil {
		ts.Fatalf("parse exported state: %v", err)
	}

	company := args[1]
	for _, app := range exported.Applications {
		if app.Company == company {
			ts.Setenv(args[2], app.ID)
			return
		}
	}

	ts.Fatalf("application for company %q not found", company)
}

// CmdDateOffset stores the local date key OFFSET days from today in an
// env var. Scripts use it to address log days without hardcoding dates.
func CmdDateOffset(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("dateoffset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: dateoffset VAR OFFSET")
	}

	offset, err := strconv.Atoi(args[1])
	if err != nil {
		ts.Fatalf("parse offset %q: %v", args[1], err)
	}

	day := time.Now().AddDate(0, 0, offset)
	ts.Setenv(args[0], string(dates.KeyFor(day)))
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
