package handoff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

func TestEnabled(t *testing.T) {
	s := settings.Default()

	if !Enabled(s, "claude") {
		t.Error("claude continuation should be enabled by default")
	}
	if Enabled(s, "gemini") {
		t.Error("gemini continuation should be disabled by default")
	}
	if Enabled(s, "unknown") {
		t.Error("unknown tools should never be enabled")
	}
}

func TestResolveTarget(t *testing.T) {
	s := settings.Default()

	tests := []struct {
		name string
		tool string
		want string
	}{
		{"claude routes to codex", "claude", "codex"},
		{"codex routes to claude", "codex", "claude"},
		{"unknown tool falls back to claude", "nonexistent", "claude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTarget(s, tt.tool); got != tt.want {
				t.Errorf("ResolveTarget(%q) = %q, want %q", tt.tool, got, tt.want)
			}
		})
	}
}

func TestResolveTargetInvalidConfigured(t *testing.T) {
	s := settings.Default()
	s.Continuations["claude"] = settings.ContinuationPrefs{Enabled: true, Target: "vim"}

	if got := ResolveTarget(s, "claude"); got != "claude" {
		t.Errorf("invalid configured target should fall back to claude, got %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	dir := t.TempDir()
	todo := strings.Join([]string{
		"# TODO",
		"- [x] done already",
		"- [ ] first open item",
		"- [ ] second open item",
		"some prose",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "TODO.md"), []byte(todo), 0o644); err != nil {
		t.Fatal(err)
	}

	s := settings.Default()
	prompt := BuildPrompt(s, "claude", "codex", dir)

	if !strings.Contains(prompt, "- [ ] first open item") {
		t.Errorf("prompt should carry open TODO items, got %q", prompt)
	}
	if strings.Contains(prompt, "done already") {
		t.Errorf("checked items should be excluded, got %q", prompt)
	}
}

func TestBuildPromptTodoLimit(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, "- [ ] item")
	}
	if err := os.WriteFile(filepath.Join(dir, "TODO.md"), []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	prompt := BuildPrompt(settings.Default(), "claude", "codex", dir)
	if got := strings.Count(prompt, "- [ ] item"); got != 5 {
		t.Errorf("prompt should carry at most 5 TODO items, got %d", got)
	}
}

func TestBuildPromptMissingFiles(t *testing.T) {
	prompt := BuildPrompt(settings.Default(), "claude", "codex", t.TempDir())
	if !strings.Contains(prompt, "No open TODO items.") {
		t.Errorf("empty project should yield the no-TODO placeholder, got %q", prompt)
	}
}

func TestBuildPromptPlanAndPlaceholders(t *testing.T) {
	dir := t.TempDir()
	plan := "\nGoal one\n\nGoal two\n"
	if err := os.WriteFile(filepath.Join(dir, "PLAN.md"), []byte(plan), 0o644); err != nil {
		t.Fatal(err)
	}

	s := settings.Default()
	s.Prompts["gemini"] = "From {source} to {target}:\n{plan}"
	prompt := BuildPrompt(s, "gemini", "claude", dir)

	want := "From gemini to claude:\nGoal one\nGoal two"
	if prompt != want {
		t.Errorf("BuildPrompt() = %q, want %q", prompt, want)
	}
}

func TestTargetCommand(t *testing.T) {
	dir := t.TempDir()

	t.Run("claude", func(t *testing.T) {
		cmd := TargetCommand("claude", dir, "keep going")
		if !strings.HasSuffix(cmd[0], "claude") {
			t.Errorf("executable = %q, want claude", cmd[0])
		}
		assertArgs(t, cmd[1:], "--continue", "--dangerously-skip-permissions", "--prompt", "keep going")
	})

	t.Run("claude without prompt", func(t *testing.T) {
		cmd := TargetCommand("claude", dir, "")
		for _, arg := range cmd {
			if arg == "--prompt" {
				t.Error("empty prompt should not emit --prompt")
			}
		}
	})

	t.Run("codex", func(t *testing.T) {
		cmd := TargetCommand("codex", dir, "next steps")
		if !strings.HasSuffix(cmd[0], "codex") {
			t.Errorf("executable = %q, want codex", cmd[0])
		}
		assertArgs(t, cmd[1:],
			"--cd="+dir, "-m", "gpt5",
			"--dangerously-bypass-approvals-and-sandbox",
			"--sandbox", "danger-full-access", "next steps")
	})

	t.Run("gemini", func(t *testing.T) {
		cmd := TargetCommand("gemini", dir, "p")
		assertArgs(t, cmd[1:], "-c", "-y", "p")
	})

	t.Run("unknown target defaults to claude", func(t *testing.T) {
		cmd := TargetCommand("vim", dir, "")
		if !strings.HasSuffix(cmd[0], "claude") {
			t.Errorf("executable = %q, want claude fallback", cmd[0])
		}
	})
}

func assertArgs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEnvUpdates(t *testing.T) {
	s := settings.Default()
	env := EnvUpdates(s, "claude", "codex", "the prompt", "/work/project")

	want := map[string]string{
		EnvTargetTool:          "codex",
		EnvSourceTool:          "claude",
		EnvPrompt:              "the prompt",
		EnvProjectDir:          "/work/project",
		EnvNotificationEnabled: "1",
		EnvNotificationMessage: "Continuing on codex",
		EnvNotificationSound:   "success",
		EnvKillOld:             "1",
	}
	for key, value := range want {
		if env[key] != value {
			t.Errorf("env[%s] = %q, want %q", key, env[key], value)
		}
	}
}

func TestEnvUpdatesDisabled(t *testing.T) {
	s := settings.Default()
	s.Notifications.Enabled = false
	s.KillOldSessions = false

	env := EnvUpdates(s, "codex", "claude", "", "/tmp")
	if env[EnvNotificationEnabled] != "0" || env[EnvKillOld] != "0" {
		t.Errorf("disabled flags should serialize as 0, got %v", env)
	}
}
