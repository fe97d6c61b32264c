package main

import (
	"fmt"
	"os"
	"strings"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/settings"
)

func usageContinuation() {
	fmt.Fprint(os.Stderr, `Usage: vomgr continuation <subcommand>

Subcommands:
  set <source> <target>  Route continuations from source to target
  disable <source>       Stop continuations from source
  status                 Show the current routing table
`)
}

func cmdContinuation(args []string) int {
	if len(args) < 1 {
		usageContinuation()
		return 2
	}

	s, err := settings.Load("")
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			errorf("Usage: vomgr continuation set <source> <target>\n")
			return 2
		}
		source, target := args[1], args[2]
		if !validTool(source) || !validTool(target) {
			return 2
		}
		s.Continuations[source] = settings.ContinuationPrefs{Enabled: true, Target: target}
		if _, err := settings.Save(s, ""); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Continuation set: %s -> %s\n", source, target)
		return 0
	case "disable":
		if len(args) < 2 {
			errorf("Usage: vomgr continuation disable <source>\n")
			return 2
		}
		source := args[1]
		if !validTool(source) {
			return 2
		}
		prefs := s.Continuations[source]
		prefs.Enabled = false
		if prefs.Target == "" {
			prefs.Target = "claude"
		}
		s.Continuations[source] = prefs
		if _, err := settings.Save(s, ""); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Continuation disabled for %s\n", source)
		return 0
	case "status":
		for _, tool := range settings.Tools {
			prefs := s.Continuations[tool]
			state := "disabled"
			if prefs.Enabled {
				state = "enabled -> " + prefs.Target
			}
			info("%s: %s\n", bold(tool), state)
		}
		return 0
	default:
		errorf("Unknown continuation subcommand: %s\n", args[0])
		usageContinuation()
		return 2
	}
}

func usagePrompt() {
	fmt.Fprint(os.Stderr, `Usage: vomgr prompt <subcommand>

Subcommands:
  set <tool> <template>  Set the continuation prompt template for tool
  show [tool]            Show the configured prompt templates

Templates may use {todo}, {plan}, {target} and {source} placeholders.
`)
}

func cmdPrompt(args []string) int {
	if len(args) < 1 {
		usagePrompt()
		return 2
	}

	s, err := settings.Load("")
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			errorf("Usage: vomgr prompt set <tool> <template>\n")
			return 2
		}
		tool := args[1]
		if !validTool(tool) {
			return 2
		}
		s.Prompts[tool] = strings.Join(args[2:], " ")
		if _, err := settings.Save(s, ""); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Prompt template set for %s\n", tool)
		return 0
	case "show":
		tools := settings.Tools
		if len(args) >= 2 {
			if !validTool(args[1]) {
				return 2
			}
			tools = []string{args[1]}
		}
		for _, tool := range tools {
			info("%s:\n  %s\n", bold(tool), strings.ReplaceAll(s.PromptFor(tool), "\n", "\n  "))
		}
		return 0
	default:
		errorf("Unknown prompt subcommand: %s\n", args[0])
		usagePrompt()
		return 2
	}
}

func usageNotify() {
	fmt.Fprint(os.Stderr, `Usage: vomgr notify <subcommand>

Subcommands:
  set <on|off> [message]  Toggle notifications; optionally set the message
  sound <name>            Set the notification sound
  show                    Show notification settings

Messages may use {target} and {source} placeholders.
`)
}

func cmdNotify(args []string) int {
	if len(args) < 1 {
		usageNotify()
		return 2
	}

	s, err := settings.Load("")
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			errorf("Usage: vomgr notify set <on|off> [message]\n")
			return 2
		}
		switch args[1] {
		case "on":
			s.Notifications.Enabled = true
		case "off":
			s.Notifications.Enabled = false
		default:
			errorf("Expected on or off, got %q\n", args[1])
			return 2
		}
		if len(args) >= 3 {
			s.Notifications.Message = strings.Join(args[2:], " ")
		}
		if _, err := settings.Save(s, ""); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Notification settings updated\n")
		return 0
	case "sound":
		if len(args) < 2 {
			errorf("Usage: vomgr notify sound <name>\n")
			return 2
		}
		s.Notifications.Sound = args[1]
		if _, err := settings.Save(s, ""); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Notification sound set to %s\n", args[1])
		return 0
	case "show":
		state := "off"
		if s.Notifications.Enabled {
			state = "on"
		}
		info("Notifications: %s\n", state)
		info("Message: %s\n", s.Notifications.Message)
		info("Sound: %s\n", s.Notifications.Sound)
		return 0
	default:
		errorf("Unknown notify subcommand: %s\n", args[0])
		usageNotify()
		return 2
	}
}

func usageTerminal() {
	fmt.Fprint(os.Stderr, `Usage: vomgr terminal <subcommand>

Subcommands:
  set <platform> <command...>  Set the terminal launch template for a
                               platform (darwin, linux, windows). One
                               argument must contain {command}.
  show [platform]              Show configured terminal templates
`)
}

func cmdTerminal(args []string) int {
	if len(args) < 1 {
		usageTerminal()
		return 2
	}

	s, err := settings.Load("")
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}

	switch args[0] {
	case "set":
		if len(args) < 3 {
			errorf("Usage: vomgr terminal set <platform> <command...>\n")
			return 2
		}
		platform := args[1]
		if platform != "darwin" && platform != "linux" && platform != "windows" {
			errorf("Unknown platform %q (expected darwin, linux or windows)\n", platform)
			return 2
		}
		template := args[2:]
		hasPlaceholder := false
		for _, part := range template {
			if strings.Contains(part, "{command}") {
				hasPlaceholder = true
				break
			}
		}
		if !hasPlaceholder {
			errorf("Terminal template must contain a {command} placeholder\n")
			return 2
		}
		if s.Terminals.Defaults == nil {
			s.Terminals.Defaults = map[string][]string{}
		}
		s.Terminals.Defaults[platform] = template
		if _, err := settings.Save(s, ""); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Terminal template set for %s\n", platform)
		return 0
	case "show":
		platforms := []string{"darwin", "linux", "windows"}
		if len(args) >= 2 {
			platforms = []string{args[1]}
		}
		for _, platform := range platforms {
			template := s.Terminals.Defaults[platform]
			if len(template) == 0 {
				info("%s: (not configured)\n", bold(platform))
				continue
			}
			info("%s: %s\n", bold(platform), strings.Join(template, " "))
		}
		return 0
	default:
		errorf("Unknown terminal subcommand: %s\n", args[0])
		usageTerminal()
		return 2
	}
}
