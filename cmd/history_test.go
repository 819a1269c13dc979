package cmd

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"
)

func TestHistoryCommands_FreshDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "medtran.db")

	out, err := executeCommand(t, "history", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "No translation attempts recorded.") {
		t.Errorf("expected empty-state message, got %q", out)
	}

	out, err = executeCommand(t, "history", "stats", "--db", dbPath)
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	if !strings.Contains(out, "Total attempts:  0") {
		t.Errorf("unexpected stats %q", out)
	}

	out, err = executeCommand(t, "history", "clear", "--db", dbPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 0 attempts.") {
		t.Errorf("unexpected clear output %q", out)
	}
}

func TestHistoryCommands_RecordsTranslation(t *testing.T) {
	server, _ := newInferenceServer(t, http.StatusServiceUnavailable, `{"estimated_time":20.5}`)
	dbPath := filepath.Join(t.TempDir(), "data", "medtran.db")

	if _, err := executeCommand(t, "translate",
		"--text", "Niega abortos.", "--source", "es", "--target", "en",
		"--base-url", server.URL, "--db", dbPath); err == nil {
		t.Fatal("expected an error for a loading model")
	}

	out, err := executeCommand(t, "history", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "pending") || !strings.Contains(out, "estimated_time=20.5") {
		t.Errorf("expected the pending attempt, got %q", out)
	}
	if strings.Contains(out, "Niega abortos.") {
		t.Error("history must not contain the source text")
	}

	out, err = executeCommand(t, "history", "stats", "--db", dbPath)
	if err != nil {
		t.Fatalf("history stats: %v", err)
	}
	if !strings.Contains(out, "Total attempts:  1") {
		t.Errorf("unexpected stats %q", out)
	}
}
