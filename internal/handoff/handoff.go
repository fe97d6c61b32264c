// Package handoff implements the continuation protocol: when one CLI tool
// finishes a session, decide which tool continues, build a context-aware
// prompt from the project's TODO/PLAN files, and assemble the command and
// environment for the next launch.
package handoff

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

// Environment variables exposed to relaunch helpers and spawned processes.
const (
	EnvTargetTool          = "VOMGR_TARGET_TOOL"
	EnvSourceTool          = "VOMGR_SOURCE_TOOL"
	EnvPrompt              = "VOMGR_PROMPT"
	EnvProjectDir          = "VOMGR_PROJECT_DIR"
	EnvNotificationEnabled = "VOMGR_NOTIFICATION_ENABLED"
	EnvNotificationMessage = "VOMGR_NOTIFICATION_MESSAGE"
	EnvNotificationSound   = "VOMGR_NOTIFICATION_SOUND"
	EnvKillOld             = "VOMGR_KILL_OLD"
	EnvForceDirect         = "VOMGR_FORCE_DIRECT"
	EnvTerminalApp         = "VOMGR_TERMINAL_APP"
)

// DefaultPromptFallback is used when no template can be rendered at all.
const DefaultPromptFallback = "Continue working on the current task"

// Enabled reports whether tool is configured to hand off when it exits.
func Enabled(s *settings.Settings, tool string) bool {
	prefs, ok := s.Continuations[tool]
	return ok && prefs.Enabled
}

// ResolveTarget returns the continuation target for tool. Unknown or invalid
// targets fall back to claude.
func ResolveTarget(s *settings.Settings, tool string) string {
	target := "claude"
	if prefs, ok := s.Continuations[tool]; ok && prefs.Target != "" {
		target = prefs.Target
	}
	if !settings.IsTool(target) {
		return "claude"
	}
	return target
}

// collectTodoLines returns up to five unchecked items from TODO.md.
func collectTodoLines(projectDir string) []string {
	data, err := os.ReadFile(filepath.Join(projectDir, "TODO.md"))
	if err != nil {
		return nil
	}
	var items []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- [ ]") {
			items = append(items, line)
			if len(items) == 5 {
				break
			}
		}
	}
	return items
}

// collectPlanHint returns the first five non-empty lines of PLAN.md.
func collectPlanHint(projectDir string) string {
	data, err := os.ReadFile(filepath.Join(projectDir, "PLAN.md"))
	if err != nil {
		return ""
	}
	var snippet []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			snippet = append(snippet, line)
			if len(snippet) == 5 {
				break
			}
		}
	}
	return strings.Join(snippet, "\n")
}

// BuildPrompt renders the prompt handed to the continuation CLI. The source
// tool's template is filled with {todo}, {plan}, {target} and {source}
// placeholders from the project's TODO.md and PLAN.md.
func BuildPrompt(s *settings.Settings, sourceTool, targetTool, projectDir string) string {
	template := s.PromptFor(sourceTool)
	if template == "" {
		template = DefaultPromptFallback
	}

	todoText := strings.Join(collectTodoLines(projectDir), "\n")
	if todoText == "" {
		todoText = "No open TODO items."
	}
	planText := collectPlanHint(projectDir)
	if planText == "" {
		planText = "No plan summary available."
	}

	replacer := strings.NewReplacer(
		"{todo}", todoText,
		"{plan}", planText,
		"{target}", targetTool,
		"{source}", sourceTool,
	)
	return replacer.Replace(template)
}

// resolveExecutable returns an absolute path for name when discoverable in
// PATH, otherwise the name unchanged.
func resolveExecutable(name string) string {
	if resolved, err := exec.LookPath(name); err == nil {
		return resolved
	}
	return name
}

// TargetCommand returns the argument list used to launch targetTool in
// projectDir with the given prompt. The flag sets are fixed per tool.
func TargetCommand(targetTool, projectDir, prompt string) []string {
	switch targetTool {
	case "codex":
		command := []string{
			resolveExecutable("codex"),
			"--cd=" + projectDir,
			"-m", "gpt5",
			"--dangerously-bypass-approvals-and-sandbox",
			"--sandbox", "danger-full-access",
		}
		if prompt != "" {
			command = append(command, prompt)
		}
		return command
	case "gemini":
		command := []string{resolveExecutable("gemini"), "-c", "-y"}
		if prompt != "" {
			command = append(command, prompt)
		}
		return command
	}
	command := []string{resolveExecutable("claude"), "--continue", "--dangerously-skip-permissions"}
	if prompt != "" {
		command = append(command, "--prompt", prompt)
	}
	return command
}

// EnvUpdates builds the VOMGR_* variables passed to relaunch helpers. The
// notification message has {target} and {source} substituted.
func EnvUpdates(s *settings.Settings, sourceTool, targetTool, prompt, projectDir string) map[string]string {
	message := strings.NewReplacer(
		"{target}", targetTool,
		"{source}", sourceTool,
	).Replace(s.Notifications.Message)

	return map[string]string{
		EnvTargetTool:          targetTool,
		EnvSourceTool:          sourceTool,
		EnvPrompt:              prompt,
		EnvProjectDir:          projectDir,
		EnvNotificationEnabled: boolFlag(s.Notifications.Enabled),
		EnvNotificationMessage: message,
		EnvNotificationSound:   s.Notifications.Sound,
		EnvKillOld:             boolFlag(s.KillOldSessions),
	}
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
