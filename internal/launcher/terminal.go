package launcher

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

// TerminalAppEnv overrides the macOS terminal application used for spawns.
const TerminalAppEnv = "VOMGR_TERMINAL_APP"

// PlatformKey returns the lower-case platform name used as a key in terminal
// preference tables: darwin, windows or linux.
func PlatformKey() string {
	switch runtime.GOOS {
	case "darwin", "windows":
		return runtime.GOOS
	}
	return "linux"
}

// ShellCommand returns a shell command string that changes into dir and runs
// argv there. Used to fill the {command} placeholder in terminal templates.
func ShellCommand(dir string, argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return fmt.Sprintf("cd %s && %s", shellQuote(dir), strings.Join(quoted, " "))
}

func shellQuote(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " \t\n\"'\\$&|;<>()*?[]#~%{}`!") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

// SpawnTerminal opens a new terminal window running commandString in cwd.
// The template comes from the user's terminal preferences for tool; built-in
// platform strategies cover an empty template. Returns false when nothing
// could be spawned and the caller should run the command directly.
func SpawnTerminal(prefs settings.TerminalPrefs, tool, commandString, cwd string, env map[string]string) (bool, error) {
	template := prefs.CommandFor(tool, PlatformKey())
	if len(template) > 0 {
		formatted := make([]string, len(template))
		for i, part := range template {
			formatted[i] = strings.ReplaceAll(part, "{command}", commandString)
		}
		log.Debug("spawning terminal", "command", formatted)
		if _, err := StartDetached(formatted, cwd, env); err != nil {
			return false, err
		}
		return true, nil
	}

	switch PlatformKey() {
	case "darwin":
		return true, spawnMacTerminal(commandString, cwd, env)
	case "windows":
		_, err := StartDetached(
			[]string{"cmd.exe", "/c", "start", "", "cmd.exe", "/k", commandString},
			cwd, env)
		return err == nil, err
	}
	return false, nil
}

// spawnMacTerminal drives Terminal.app (or the app named by
// VOMGR_TERMINAL_APP) through osascript.
func spawnMacTerminal(commandString, cwd string, env map[string]string) error {
	app := "Terminal"
	if override := envValue(env, TerminalAppEnv); override != "" {
		app = override
	}
	script := fmt.Sprintf("tell application %q to do script %q", app, commandString)
	_, err := StartDetached([]string{"osascript", "-e", script}, cwd, env)
	return err
}

func envValue(env map[string]string, key string) string {
	if value, ok := env[key]; ok && value != "" {
		return value
	}
	return os.Getenv(key)
}
