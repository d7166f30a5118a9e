package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// tempConfig returns a configuration on a storage file in a temporary
// directory, created with content unless content is empty.
func tempConfig(t *testing.T, content string) Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write storage file: %v", err)
		}
	}
	return Config{StoragePath: path, Currency: "USD", LogLevel: "warn"}
}

// readStorage returns the content of the configured storage file.
func readStorage(t *testing.T, cfg Config) string {
	t.Helper()
	content, err := os.ReadFile(cfg.StoragePath)
	if err != nil {
		t.Fatalf("Failed to read storage file: %v", err)
	}
	return string(content)
}

// captureStdout redirects the commands output to a buffer for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// execute parses args with the command flags and executes it with cfg.
func execute(t *testing.T, c subcommands.Command, cfg Config, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flagSet(t, c, args...)
	return c.Execute(context.Background(), f, cfg, nil)
}

// flagSet returns the parsed flags of c.
func flagSet(t *testing.T, c subcommands.Command, args ...string) *flag.FlagSet {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return f
}
