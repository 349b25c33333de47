package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns an Environment with captured output and the given
// variables as its only environment.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

const testManifest = `[
  {
    "name": "Gate",
    "description": "Passes a trigger when open",
    "category": "Triggers",
    "image": "Gate.svg",
    "inputs": [{"name": "In", "description": "Trigger in", "type": "Trigger"}],
    "outputs": [{"name": "Out", "description": "Trigger out", "type": "Trigger"}]
  },
  {
    "name": "Random Pulse",
    "description": "Fires at random intervals",
    "image": "RandomPulse.svg"
  }
]`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readFile returns the content at path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
