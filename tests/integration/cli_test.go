package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the binary once before running tests.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "entityschema-test-*")
	if err != nil {
		os.Exit(1)
	}
	if err := BuildBinary(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestInitialize(t *testing.T) {
	env := NewTestEnv(t)
	result := env.MustRun("init")
	if !strings.Contains(result.Stdout, "initialized") {
		t.Errorf("unexpected init output %q", result.Stdout)
	}
	if _, err := os.Stat(filepath.Join(env.DataDir, "revisions.jsonl")); err != nil {
		t.Errorf("revisions.jsonl not created: %v", err)
	}
}

func TestCreateWritesRevisionLog(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	out := env.MustRun("--json", "create", "E1", "--lang", "en", "--label", "human", "--text", "<human> {}")
	created := ParseJSON[WriteResult](t, out.Stdout)
	if !created.Changed || !isUUIDv7(created.Revision.RevisionID) {
		t.Fatalf("unexpected create result %+v", created)
	}

	type record struct {
		RevisionID string  `json:"revision_id"`
		SchemaID   string  `json:"schema_id"`
		ParentID   *string `json:"parent_id"`
		Seq        int     `json:"seq"`
		Content    string  `json:"content"`
	}
	records := ReadJSONLFile[record](t, filepath.Join(env.DataDir, "revisions.jsonl"))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.RevisionID != created.Revision.RevisionID || rec.ParentID != nil || rec.Seq != 1 {
		t.Errorf("unexpected record %+v", rec)
	}
	want := `{"id":"E1","serializationVersion":"3.0","labels":{"en":"human"},"descriptions":{},"aliases":{},"schemaText":"<human> {}","type":"ShExC"}`
	if rec.Content != want {
		t.Errorf("content = %s\nwant      %s", rec.Content, want)
	}
}

func TestRevisionsSurviveRestart(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("create", "E1", "--label", "human")
	env.MustRun("set-badge", "E1", "--lang", "de", "--label", "Mensch")

	// Every invocation rebuilds the query database from the log.
	if err := os.Remove(filepath.Join(env.DataDir, "entityschema.db")); err != nil {
		t.Fatalf("removing database: %v", err)
	}
	history := ParseJSON[[]Revision](t, env.MustRun("--json", "history", "E1").Stdout)
	if len(history) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(history))
	}
	if history[1].ParentID != history[0].RevisionID {
		t.Errorf("revision chain broken: %+v", history)
	}
}

func TestMergeAndConflictWorkflow(t *testing.T) {
	env := NewTestEnv(t)
	created := ParseJSON[WriteResult](t, env.MustRun("--json", "create", "E1", "--label", "human").Stdout)
	base := created.Revision.RevisionID

	env.MustRun("set-badge", "E1", "--lang", "fr", "--label", "humain", "--base", base)
	merged := ParseJSON[WriteResult](t, env.MustRun("--json", "set-text", "E1", "--text", "<human> {}", "--base", base).Stdout)
	if !merged.Changed {
		t.Fatal("expected merged edit to write a revision")
	}

	show := env.MustRun("show", "E1").Stdout
	for _, want := range []string{"humain", "<human> {}"} {
		if !strings.Contains(show, want) {
			t.Errorf("show output missing %q:\n%s", want, show)
		}
	}

	env.MustRun("set-badge", "E1", "--label", "person")
	result := env.Run("set-badge", "E1", "--label", "homo sapiens", "--base", base)
	if result.ExitCode != 1 {
		t.Errorf("expected exit code 1 for edit conflict, got %d (stderr %s)", result.ExitCode, result.Stderr)
	}
}

func TestImportFromStdin(t *testing.T) {
	env := NewTestEnv(t)
	result := env.RunWithInput(`{"labels":{"en":"cat"},"aliases":{"en":["kitty"," kitty "]},"schemaText":"<cat> {}"}`, "import", "E2", "-")
	if result.ExitCode != 0 {
		t.Fatalf("import failed: %s", result.Stderr)
	}
	if out := env.MustRun("show", "E2").Stdout; strings.Count(out, "kitty") != 1 {
		t.Errorf("aliases were not deduplicated:\n%s", out)
	}
}

func TestExitCodes(t *testing.T) {
	env := NewTestEnv(t)
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"version"}, 0},
		{"invalid id", []string{"show", "X1"}, 1},
		{"missing schema", []string{"history", "E404"}, 1},
		{"bad arguments", []string{"undo", "E1"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.Run(tt.args...).ExitCode; got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}
