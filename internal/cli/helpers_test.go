package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/data-castle/daybook/internal/config"
	"github.com/data-castle/daybook/internal/journal"
	"github.com/data-castle/daybook/pkg/models"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// setupTestConfig points the config at an empty temp directory
func setupTestConfig(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv("DAYBOOK_CONFIG", "")
	t.Setenv("DAYBOOK_JOURNAL", "")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	origFunc := config.GetConfigPathFunc
	config.GetConfigPathFunc = func() (string, error) {
		return configPath, nil
	}
	t.Cleanup(func() { config.GetConfigPathFunc = origFunc })

	return tmpDir, configPath
}

// setupTestJournal registers a journal (default name "test") in a fresh
// config and returns its settings. The journal file is not created.
func setupTestJournal(t *testing.T, journalName string) (string, *config.Journal) {
	t.Helper()
	if journalName == "" {
		journalName = "test"
	}

	tmpDir, _ := setupTestConfig(t)

	journalCfg := &config.Journal{
		Name: journalName,
		Path: filepath.Join(tmpDir, journalName+".json"),
	}

	cfg := config.NewConfig()
	if err := cfg.AddJournal(journalCfg); err != nil {
		t.Fatalf("failed to add journal to config: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	return tmpDir, journalCfg
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer

	a := newApp(strings.NewReader(stdin), &stdout, &stderr)
	a.now = func() time.Time { return testNow }

	code := a.run(context.Background(), append([]string{"daybook"}, args...))
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func mustRun(t *testing.T, args ...string) cliResult {
	t.Helper()
	res := runCLI(t, "", args...)
	if res.code != 0 {
		t.Fatalf("daybook %s: expected exit code 0, got %d\nstderr: %s", strings.Join(args, " "), res.code, res.stderr)
	}
	return res
}

func openStore(t *testing.T, path string) *journal.Store {
	t.Helper()
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}
	return store
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}
