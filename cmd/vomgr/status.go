package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vexyart/vexy-overnight/internal/buildinfo"
	"github.com/vexyart/vexy-overnight/internal/config"
	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/handoff"
	"github.com/vexyart/vexy-overnight/internal/session"
	"github.com/vexyart/vexy-overnight/internal/settings"
)

func usageStatus() {
	fmt.Fprint(os.Stderr, `Usage: vomgr status [options]

Shows hook state, tool availability and the continuation routing table.

Options:
  --events           Also print recent continuation events
  --event-count <n>  Number of events to print (default 10)
  -h, --help         Show this help
`)
}

func cmdStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageStatus
	showEvents := fs.Bool("events", false, "print recent continuation events")
	eventCount := fs.Int("event-count", 10, "number of events to print")
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageStatus()
		return 0
	}

	cfg := config.NewManager("")
	info("%s %s\n\n", bold("vomgr"), buildinfo.Version)

	info("%s: hook %s (installed=%t)\n", bold("claude"),
		enabledWord(cfg.IsClaudeHookEnabled()), cfg.IsToolInstalled("claude"))
	info("%s: hook %s (installed=%t)\n", bold("codex"),
		enabledWord(cfg.IsCodexHookEnabled()), cfg.IsToolInstalled("codex"))
	info("%s: hook not supported (installed=%t)\n", bold("gemini"),
		cfg.IsToolInstalled("gemini"))

	s, err := settings.Load("")
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	info("\nRouting:\n")
	for _, tool := range settings.Tools {
		prefs := s.Continuations[tool]
		if prefs.Enabled {
			info("  %s -> %s\n", tool, prefs.Target)
		} else {
			info("  %s: disabled\n", tool)
		}
	}

	if state, err := session.NewManager("").Read(); err == nil && state != nil {
		info("\nActive session: %s (pid %d) in %s\n", state.Tool, state.PID, state.CWD)
	}

	if *showEvents {
		events, err := handoff.ReadEvents("", *eventCount)
		if err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		info("\nRecent events:\n")
		if len(events) == 0 {
			info("  (none)\n")
		}
		for _, ev := range events {
			line := fmt.Sprintf("  %s %s %s -> %s",
				ev.Timestamp.Format("2006-01-02 15:04:05"), ev.Type, ev.Source, ev.Target)
			if ev.Detail != "" {
				line += " (" + ev.Detail + ")"
			}
			info("%s\n", line)
		}
	}
	return 0
}

func enabledWord(enabled bool) string {
	if enabled {
		return cyan("enabled")
	}
	return "disabled"
}
