package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	s := Default()

	if !s.Continuations["claude"].Enabled || s.Continuations["claude"].Target != "codex" {
		t.Errorf("claude continuation = %+v, want enabled -> codex", s.Continuations["claude"])
	}
	if !s.Continuations["codex"].Enabled || s.Continuations["codex"].Target != "claude" {
		t.Errorf("codex continuation = %+v, want enabled -> claude", s.Continuations["codex"])
	}
	if s.Continuations["gemini"].Enabled {
		t.Error("gemini continuation should default to disabled")
	}
	if !s.KillOldSessions {
		t.Error("KillOldSessions should default to true")
	}
	if !s.Notifications.Enabled || s.Notifications.Sound != "success" {
		t.Errorf("notifications = %+v, want enabled with sound success", s.Notifications)
	}
	for _, key := range []string{"darwin", "windows", "linux"} {
		cmd := s.Terminals.Defaults[key]
		if len(cmd) == 0 {
			t.Errorf("missing default terminal template for %s", key)
			continue
		}
		if !strings.Contains(cmd[len(cmd)-1], "{command}") {
			t.Errorf("terminal template for %s lacks {command} placeholder: %v", key, cmd)
		}
	}
}

func TestValidate(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() on defaults: %v", err)
	}

	s.Continuations["claude"] = ContinuationPrefs{Enabled: true, Target: "copilot"}
	if err := s.Validate(); err == nil {
		t.Error("Validate() should reject unknown continuation target")
	}
}

func TestPromptFor(t *testing.T) {
	s := Default()

	if got := s.PromptFor("codex"); !strings.Contains(got, "{todo}") {
		t.Errorf("PromptFor(codex) = %q, want default codex template", got)
	}

	// Unknown tool falls back to the claude template.
	if got := s.PromptFor("qwen"); got != s.Prompts["claude"] {
		t.Errorf("PromptFor(qwen) = %q, want claude fallback", got)
	}

	s.Prompts = map[string]string{}
	if got := s.PromptFor("claude"); got != "Continue" {
		t.Errorf("PromptFor with no templates = %q, want Continue", got)
	}
}

func TestCommandFor(t *testing.T) {
	prefs := TerminalPrefs{
		Defaults: map[string][]string{"linux": {"gnome-terminal", "--", "{command}"}},
		PerTool: map[string]map[string][]string{
			"codex": {"linux": {"xterm", "-e", "{command}"}},
		},
	}

	if got := prefs.CommandFor("codex", "linux"); got[0] != "xterm" {
		t.Errorf("CommandFor(codex, linux) = %v, want per-tool override", got)
	}
	if got := prefs.CommandFor("claude", "linux"); got[0] != "gnome-terminal" {
		t.Errorf("CommandFor(claude, linux) = %v, want default", got)
	}
	if got := prefs.CommandFor("claude", "darwin"); got != nil {
		t.Errorf("CommandFor(claude, darwin) = %v, want nil", got)
	}
}

func TestLoadCreatesDefaults(t *testing.T) {
	home := t.TempDir()

	s, err := Load(home)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !s.Continuations["claude"].Enabled {
		t.Error("first-run load should return defaults")
	}

	if _, err := os.Stat(Path(home)); err != nil {
		t.Errorf("Load() should persist defaults on first run: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	home := t.TempDir()

	s := Default()
	s.Continuations["claude"] = ContinuationPrefs{Enabled: false, Target: "gemini"}
	s.Prompts["codex"] = "Resume: {todo}"
	s.Notifications.Enabled = false
	s.KillOldSessions = false
	if _, err := Save(s, home); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(home)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Continuations["claude"].Enabled || got.Continuations["claude"].Target != "gemini" {
		t.Errorf("claude continuation = %+v, want disabled -> gemini", got.Continuations["claude"])
	}
	if got.Prompts["codex"] != "Resume: {todo}" {
		t.Errorf("prompts not round-tripped: %q", got.Prompts["codex"])
	}
	if got.Notifications.Enabled {
		t.Error("explicit notifications.enabled=false should survive a round trip")
	}
	if got.KillOldSessions {
		t.Error("explicit kill_old_sessions=false should survive a round trip")
	}
}

func TestLoadFillsMissingTools(t *testing.T) {
	home := t.TempDir()
	path := Path(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "[continuations.claude]\nenabled = true\ntarget = \"codex\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(home)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	prefs, ok := s.Continuations["gemini"]
	if !ok {
		t.Fatal("missing tools should be filled in")
	}
	if prefs.Enabled || prefs.Target != "claude" {
		t.Errorf("filled-in gemini prefs = %+v, want disabled -> claude", prefs)
	}
	// Absent optional keys keep their defaults.
	if !s.KillOldSessions || !s.Notifications.Enabled {
		t.Error("absent optional keys should keep defaults")
	}
}

func TestLoadWithoutContinuationsSection(t *testing.T) {
	home := t.TempDir()
	path := Path(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	// A settings file with no [continuations] table at all.
	if err := os.WriteFile(path, []byte("kill_old_sessions = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(home)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, tool := range Tools {
		prefs := s.Continuations[tool]
		if prefs.Enabled || prefs.Target != "claude" {
			t.Errorf("%s continuation = %+v, want disabled -> claude", tool, prefs)
		}
	}
	if s.KillOldSessions {
		t.Error("explicit kill_old_sessions=false should be honored")
	}
}

func TestLoadRejectsBadTarget(t *testing.T) {
	home := t.TempDir()
	path := Path(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "[continuations.claude]\nenabled = true\ntarget = \"cursor\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(home); err == nil {
		t.Error("Load() should reject unknown continuation targets")
	}
}

func TestSaveCreatesBackup(t *testing.T) {
	home := t.TempDir()

	if _, err := Save(Default(), home); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if _, err := Save(Default(), home); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(home, DirName))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range entries {
		if strings.Contains(e.Name(), ".backup.") {
			found = true
		}
	}
	if !found {
		t.Error("second Save() should create a timestamped backup")
	}
}
