package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// ExtensionPrefix is prepended to an unknown subcommand to find the extension
// binary in PATH.
const ExtensionPrefix = "wallet-"

// RunExtension attempts to find and execute an external wallet-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The resolved configuration is passed as environment variables, so that
// extensions read the same storage file.
func RunExtension(subcommand string, args []string, cfg Config) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("extension not found", "command", externalCmdName, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), cfg.Environ()...)

	slog.Debug("running extension", "path", lp, "args", args)
	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
