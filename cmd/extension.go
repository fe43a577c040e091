package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment variables passed to extensions, the ones config.Load reads.
const (
	EnvStore    = "FINTRACK_STORE"
	EnvCurrency = "FINTRACK_CURRENCY"
	EnvLogLevel = "FINTRACK_LOG_LEVEL"
	EnvToday    = "FINTRACK_TODAY"
)

// IsBuiltin reports whether name is a fin subcommand.
func IsBuiltin(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// The extension gets the resolved settings in its environment, so that it opens
// the same store.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fin-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	if cfg, err := loadConfig(); err == nil {
		cmd.Env = append(cmd.Env,
			EnvStore+"="+cfg.Store,
			EnvCurrency+"="+cfg.Currency,
			EnvLogLevel+"="+cfg.LogLevel,
		)
		if cfg.Today != "" {
			cmd.Env = append(cmd.Env, EnvToday+"="+cfg.Today)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Warning: invalid settings, %q runs with the environment as is: %v\n", externalCmdName, err)
	}

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
