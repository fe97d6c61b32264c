package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/vexyart/vexy-overnight/internal/buildinfo"
	"github.com/vexyart/vexy-overnight/internal/settings"
	"github.com/vexyart/vexy-overnight/internal/updater"
)

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func init() {
	// Disable colors on Windows or when not a terminal
	if runtime.GOOS == "windows" || os.Getenv("NO_COLOR") != "" {
		colorReset = ""
		colorRed = ""
		colorGreen = ""
		colorYellow = ""
		colorCyan = ""
		colorBold = ""
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "--version", "-v":
			fmt.Println(buildinfo.Version)
			return 0
		case "--help", "-h":
			usage()
			return 0
		}
	}

	if len(os.Args) < 2 {
		usage()
		return 2
	}

	switch os.Args[1] {
	case "version":
		fmt.Println(buildinfo.Version)
		warnUpdateAvailable()
		return 0
	case "install":
		return cmdInstall(os.Args[2:])
	case "uninstall":
		return cmdUninstall(os.Args[2:])
	case "enable":
		return cmdEnable(os.Args[2:])
	case "disable":
		return cmdDisable(os.Args[2:])
	case "run":
		return cmdRun(os.Args[2:])
	case "continuation":
		return cmdContinuation(os.Args[2:])
	case "prompt":
		return cmdPrompt(os.Args[2:])
	case "notify":
		return cmdNotify(os.Args[2:])
	case "terminal":
		return cmdTerminal(os.Args[2:])
	case "rules":
		return cmdRules(os.Args[2:])
	case "update":
		return cmdUpdate(os.Args[2:])
	case "status":
		return cmdStatus(os.Args[2:])
	case "hook":
		return cmdHook(os.Args[2:])
	case "relaunch":
		return cmdRelaunch(os.Args[2:])
	case "bump":
		return cmdBump(os.Args[2:])
	case "completion":
		return cmdCompletion(os.Args[2:])
	case "help":
		if len(os.Args) >= 3 {
			return cmdHelp(os.Args[2])
		}
		usage()
		return 0
	default:
		errorf("Unknown command: %s\n\n", os.Args[1])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `vomgr - Vexy Overnight Manager

Chains AI CLI sessions: when one tool finishes, the next one picks up.

Usage:
  vomgr <command> [options]

Commands:
  install       Install continuation hooks and set up configs
  uninstall     Remove hooks and restore default configs
  enable        Enable the continuation hook for a tool
  disable       Disable the continuation hook for a tool
  run           Launch claude, codex or gemini with handy defaults
  continuation  Manage continuation routing (set/disable/status)
  prompt        Manage continuation prompt templates (set/show)
  notify        Manage continuation notifications (set/sound/show)
  terminal      Manage terminal spawn commands (set/show)
  rules         Sync and edit shared instruction files
  update        Check and update the CLI toolchain
  status        Show install state
  hook          Continuation hook entry point (called by the tools)
  relaunch      Consume a pending continuation (called by hooks)
  bump          Tag and push the next patch version
  completion    Generate shell completion script
  version       Show version
  help          Show help for a command

Examples:
  vomgr install --migrate
  vomgr continuation set claude codex
  vomgr run codex --cwd ~/project
  vomgr status --events

Run 'vomgr help <command>' for more information.
`)
}

// Helper functions for colored output
func success(format string, args ...interface{}) {
	fmt.Printf("%s✓%s %s", colorGreen, colorReset, fmt.Sprintf(format, args...))
}

func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s⚠%s %s", colorYellow, colorReset, fmt.Sprintf(format, args...))
}

func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%sError:%s %s", colorRed, colorReset, fmt.Sprintf(format, args...))
}

func info(format string, args ...interface{}) {
	fmt.Printf("%s", fmt.Sprintf(format, args...))
}

func bold(s string) string {
	return colorBold + s + colorReset
}

func cyan(s string) string {
	return colorCyan + s + colorReset
}

// validTool checks a tool argument and prints the accepted values on error.
func validTool(tool string) bool {
	if settings.IsTool(tool) {
		return true
	}
	errorf("Unknown tool %q (expected claude, codex or gemini)\n", tool)
	return false
}

func warnUpdateAvailable() {
	res := updater.SelfCheck(buildinfo.Version, updater.SelfCheckOptions{})
	if res.UpdateAvailable {
		warn("Update available: %s -> %s\n", res.Current, res.Latest)
	}
}

func cmdHelp(command string) int {
	switch command {
	case "install":
		usageInstall()
	case "uninstall":
		usageUninstall()
	case "enable", "disable":
		fmt.Fprintln(os.Stderr, "Usage: vomgr "+command+" <claude|codex|gemini>")
	case "run":
		usageRun()
	case "continuation":
		usageContinuation()
	case "prompt":
		usagePrompt()
	case "notify":
		usageNotify()
	case "terminal":
		usageTerminal()
	case "rules":
		usageRules()
	case "update":
		usageUpdate()
	case "status":
		usageStatus()
	case "hook":
		fmt.Fprintln(os.Stderr, "Usage: vomgr hook <tool>\n\nReads the hook payload from stdin. Installed hooks call this; it is\nnot meant to be run by hand.")
	case "relaunch":
		fmt.Fprintln(os.Stderr, "Usage: vomgr relaunch <tool>\n\nConsumes the launch spec written by <tool>'s hook and starts the\nconfigured continuation.")
	case "bump":
		usageBump()
	case "completion":
		usageCompletion()
	case "version":
		fmt.Fprintln(os.Stderr, "Show the vomgr version.")
	default:
		errorf("Unknown command: %s\n", command)
		return 2
	}
	return 0
}
