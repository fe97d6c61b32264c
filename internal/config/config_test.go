package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/vexyart/vexy-overnight/internal/hooks"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBackup(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)

	// Missing file backs up to nothing.
	backup, err := m.Backup(m.ClaudeConfigPath())
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if backup != "" {
		t.Errorf("Backup() of missing file = %q, want empty", backup)
	}

	writeFile(t, m.ClaudeConfigPath(), `{"theme":"dark"}`)
	backup, err = m.Backup(m.ClaudeConfigPath())
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if !strings.Contains(backup, ".backup.") {
		t.Errorf("Backup() = %q, want timestamped sibling", backup)
	}
	data, err := os.ReadFile(backup)
	if err != nil || string(data) != `{"theme":"dark"}` {
		t.Errorf("backup content = %q, err = %v", data, err)
	}
}

func TestEnableDisableClaudeHook(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)

	if m.IsClaudeHookEnabled() {
		t.Error("hook should not be enabled before install")
	}

	if err := m.EnableClaudeHook(); err != nil {
		t.Fatalf("EnableClaudeHook() error = %v", err)
	}
	if !m.IsClaudeHookEnabled() {
		t.Error("hook should be enabled after EnableClaudeHook")
	}

	data, err := os.ReadFile(m.ClaudeConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("settings.json should stay valid JSON: %v", err)
	}
	if !strings.Contains(string(data), "vocl-go") {
		t.Error("Stop hook command should reference the vocl-go stub")
	}
	if !strings.Contains(string(data), "$CLAUDE_PROJECT_DIR") {
		t.Error("Stop hook command should pass $CLAUDE_PROJECT_DIR")
	}

	if err := m.DisableClaudeHook(); err != nil {
		t.Fatalf("DisableClaudeHook() error = %v", err)
	}
	if m.IsClaudeHookEnabled() {
		t.Error("hook should be disabled after DisableClaudeHook")
	}

	// Empty hooks table is dropped entirely.
	data, _ = os.ReadFile(m.ClaudeConfigPath())
	if strings.Contains(string(data), "hooks") {
		t.Errorf("empty hooks table should be removed, got %s", data)
	}
}

func TestEnableClaudeHookPreservesOtherSettings(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)
	writeFile(t, m.ClaudeConfigPath(), `{"theme":"dark","model":"opus"}`)

	if err := m.EnableClaudeHook(); err != nil {
		t.Fatalf("EnableClaudeHook() error = %v", err)
	}

	data, _ := os.ReadFile(m.ClaudeConfigPath())
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["theme"] != "dark" || doc["model"] != "opus" {
		t.Errorf("unrelated keys should survive: %v", doc)
	}
}

func TestEnableClaudeHookQuotesPathVerbatim(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}
	// A backslash in the home path must reach the command untouched, the way
	// a Windows hook path would.
	home := filepath.Join(t.TempDir(), `odd\dir`)
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}
	m := NewManager(home)

	if err := m.EnableClaudeHook(); err != nil {
		t.Fatalf("EnableClaudeHook() error = %v", err)
	}

	data, err := os.ReadFile(m.ClaudeConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	entries := doc["hooks"].(map[string]any)["Stop"].([]any)
	inner := entries[0].(map[string]any)["hooks"].([]any)
	command := inner[0].(map[string]any)["command"].(string)

	hookPath := hooks.NewManager(home).ClaudeHookPath()
	want := "\"" + hookPath + "\" \"$CLAUDE_PROJECT_DIR\""
	if command != want {
		t.Errorf("command = %q, want %q", command, want)
	}
	if strings.Contains(command, `\\`) {
		t.Errorf("command %q has escaped backslashes", command)
	}
}

func TestEnableDisableCodexHook(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)
	writeFile(t, m.CodexConfigPath(), "model = \"gpt5\"\n")

	if m.IsCodexHookEnabled() {
		t.Error("hook should not be enabled before install")
	}

	if err := m.EnableCodexHook(); err != nil {
		t.Fatalf("EnableCodexHook() error = %v", err)
	}
	if !m.IsCodexHookEnabled() {
		t.Error("hook should be enabled after EnableCodexHook")
	}

	data, err := os.ReadFile(m.CodexConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("config.toml should stay valid TOML: %v", err)
	}
	if doc["model"] != "gpt5" {
		t.Errorf("unrelated keys should survive: %v", doc)
	}

	if err := m.DisableCodexHook(); err != nil {
		t.Fatalf("DisableCodexHook() error = %v", err)
	}
	if m.IsCodexHookEnabled() {
		t.Error("hook should be disabled after DisableCodexHook")
	}
}

func TestDisableMissingConfigsIsNoop(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)

	if err := m.DisableClaudeHook(); err != nil {
		t.Errorf("DisableClaudeHook() on missing file error = %v", err)
	}
	if err := m.DisableCodexHook(); err != nil {
		t.Errorf("DisableCodexHook() on missing file error = %v", err)
	}
	if _, err := os.Stat(m.ClaudeConfigPath()); !os.IsNotExist(err) {
		t.Error("disable should not create config files")
	}
}

func TestSetupConfigs(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)

	if err := m.SetupConfigs(); err != nil {
		t.Fatalf("SetupConfigs() error = %v", err)
	}
	if _, err := os.Stat(m.ClaudeConfigPath()); err != nil {
		t.Errorf("claude config should be created: %v", err)
	}
	if _, err := os.Stat(m.CodexConfigPath()); err != nil {
		t.Errorf("codex config should be created: %v", err)
	}

	// Existing files are left untouched.
	writeFile(t, m.ClaudeConfigPath(), `{"theme":"dark"}`)
	if err := m.SetupConfigs(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(m.ClaudeConfigPath())
	if !strings.Contains(string(data), "dark") {
		t.Error("SetupConfigs should not overwrite existing configs")
	}
}

func TestMigrateFromLegacy(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)

	writeFile(t, m.ClaudeConfigPath(),
		`{"hooks":{"Stop":[{"hooks":[{"type":"command","command":"python claude4ever.py"}]}]}}`)
	writeFile(t, m.CodexConfigPath(),
		"notify = [\"/old/codex4ever.py\"]\n")

	if err := m.MigrateFromLegacy(); err != nil {
		t.Fatalf("MigrateFromLegacy() error = %v", err)
	}

	if !m.IsClaudeHookEnabled() {
		t.Error("migrated claude hook should reference vocl-go")
	}
	if !m.IsCodexHookEnabled() {
		t.Error("migrated codex hook should reference voco-go")
	}

	claudeData, _ := os.ReadFile(m.ClaudeConfigPath())
	if strings.Contains(string(claudeData), "claude4ever") {
		t.Error("legacy claude hook reference should be gone")
	}
}

func TestWriteRollbackOnInvalidDoc(t *testing.T) {
	home := t.TempDir()
	m := NewManager(home)
	writeFile(t, m.ClaudeConfigPath(), `{"theme":"dark"}`)

	// JSON cannot encode a channel; the write fails before touching target.
	err := m.writeJSONWithRollback(m.ClaudeConfigPath(), map[string]any{"bad": make(chan int)})
	if err == nil {
		t.Fatal("writeJSONWithRollback should fail for unencodable doc")
	}

	data, readErr := os.ReadFile(m.ClaudeConfigPath())
	if readErr != nil || string(data) != `{"theme":"dark"}` {
		t.Errorf("target should be restored after failed write, got %q err %v", data, readErr)
	}
	if _, err := os.Stat(m.ClaudeConfigPath() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be cleaned up after failure")
	}
}

func TestIsToolInstalled(t *testing.T) {
	m := NewManager(t.TempDir())

	// The shell is always around on unix CI; a nonsense name never is.
	if m.IsToolInstalled("definitely-not-a-real-tool-name-xyz") {
		t.Error("nonexistent tool should not be reported installed")
	}
}
