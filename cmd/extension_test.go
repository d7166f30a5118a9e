package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extension script is a shell script")
	}
	dir := t.TempDir()
	script := `#!/bin/sh
echo "args=$*"
echo "` + EnvStoragePath + `=$` + EnvStoragePath + `"
echo "` + EnvCurrency + `=$` + EnvCurrency + `"
exit 3
`
	if err := os.WriteFile(filepath.Join(dir, ExtensionPrefix+"hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	out := captureStdout(t)

	cfg := Config{StoragePath: "/tmp/random_wallet.txt", Currency: "EUR", LogLevel: "warn"}
	found, code := RunExtension("hello", []string{"one", "two"}, cfg)

	if !found {
		t.Fatal("RunExtension() did not find the extension")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	for _, want := range []string{
		"args=one two",
		EnvStoragePath + "=/tmp/random_wallet.txt",
		EnvCurrency + "=EUR",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("extension output does not contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("hello", nil, Config{}); found || code != 0 {
		t.Errorf("RunExtension() = (%v, %d), want (false, 0)", found, code)
	}
}
