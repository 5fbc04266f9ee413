// Package integration runs the entityschema binary end to end.
package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// entityschemaBin is the path to the built binary.
	entityschemaBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// BuildBinary compiles ./cmd/entityschema into dir and records the result
// for NewTestEnv.
func BuildBinary(dir string) error {
	root, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		return err
	}
	entityschemaBin = filepath.Join(dir, "entityschema")
	cmd := exec.Command("go", "build", "-o", entityschemaBin, "./cmd/entityschema")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		return buildErr
	}
	return nil
}

// TestEnv is an isolated config and data directory pair.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment with a config.yaml
// pointing at its data directory.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build entityschema: %v", buildErr)
	}
	if entityschemaBin == "" {
		t.Fatal("entityschema binary not built")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\nlog_level: error\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{t: t, TempDir: tempDir, Config: configDir, DataDir: dataDir}
}

// CmdResult holds the result of one invocation.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the binary with the environment's config directory.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	return e.RunWithInput("", args...)
}

// RunWithInput is Run with stdin.
func (e *TestEnv) RunWithInput(stdin string, args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(entityschemaBin, allArgs...)
	cmd.Stdin = bytes.NewBufferString(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("failed to run entityschema: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: exitCode}
}

// MustRun executes the binary and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("entityschema %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Revision mirrors the JSON form of a revision.
type Revision struct {
	RevisionID string `json:"revision_id"`
	SchemaID   string `json:"schema_id"`
	ParentID   string `json:"parent_id"`
	Summary    string `json:"summary"`
}

// WriteResult mirrors the output of commands that write revisions.
type WriteResult struct {
	Changed  bool     `json:"changed"`
	Revision Revision `json:"revision"`
}

// ReadJSONLFile reads a JSONL file and decodes every line.
func ReadJSONLFile[T any](t *testing.T, path string) []T {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open JSONL file %s: %v", path, err)
	}
	defer f.Close()

	var results []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record T
		if err := json.Unmarshal(line, &record); err != nil {
			t.Fatalf("failed to parse JSONL line in %s: %v", path, err)
		}
		results = append(results, record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan JSONL file %s: %v", path, err)
	}
	return results
}

// isUUIDv7 checks the textual layout and version nibble of a UUID.
func isUUIDv7(s string) bool {
	if len(s) != 36 {
		return false
	}
	if s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	return s[14] == '7'
}
