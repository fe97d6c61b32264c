// Package config manages the Claude and Codex configuration files with
// rollback safety. Every mutating write follows the same protocol: back up
// the current file, write a temp file, re-parse it to validate, then rename
// it over the target. A failed write restores the backup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/vexyart/vexy-overnight/internal/hooks"
)

// Manager edits the per-tool configuration files under the user's home.
type Manager struct {
	Home string
}

// NewManager creates a config manager rooted at home. An empty home resolves
// to the current user's home directory.
func NewManager(home string) *Manager {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return &Manager{Home: home}
}

// ClaudeConfigPath returns ~/.claude/settings.json.
func (m *Manager) ClaudeConfigPath() string {
	return filepath.Join(m.Home, ".claude", "settings.json")
}

// CodexConfigPath returns ~/.codex/config.toml.
func (m *Manager) CodexConfigPath() string {
	return filepath.Join(m.Home, ".codex", "config.toml")
}

// GeminiConfigPath returns ~/.gemini/config.json.
func (m *Manager) GeminiConfigPath() string {
	return filepath.Join(m.Home, ".gemini", "config.json")
}

// Backup copies path to a timestamped sibling. Returns the backup path, or
// "" when the source does not exist.
func (m *Manager) Backup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	backup := path + ".backup." + time.Now().Format("20060102_150405")
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", err
	}
	log.Debug("backed up config", "path", path, "backup", backup)
	return backup, nil
}

// claudeStopEntry models the hooks.Stop entries in Claude's settings.json.
// The rest of the document is kept as opaque JSON.
type claudeHookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

type claudeStopEntry struct {
	Hooks []claudeHookEntry `json:"hooks"`
}

// IsClaudeHookEnabled reports whether the Claude Stop hook references the
// vomgr continuation stub.
func (m *Manager) IsClaudeHookEnabled() bool {
	doc, err := m.loadJSON(m.ClaudeConfigPath())
	if err != nil {
		log.Debug("error checking claude hook", "err", err)
		return false
	}
	for _, entry := range claudeStopEntries(doc) {
		for _, h := range entry.Hooks {
			if containsHook(h.Command, hooks.ClaudeHookName) {
				return true
			}
		}
	}
	return false
}

// IsCodexHookEnabled reports whether the Codex notify list references the
// vomgr continuation stub.
func (m *Manager) IsCodexHookEnabled() bool {
	doc, err := m.loadTOML(m.CodexConfigPath())
	if err != nil {
		log.Debug("error checking codex hook", "err", err)
		return false
	}
	for _, item := range tomlStringSlice(doc["notify"]) {
		if containsHook(item, hooks.CodexHookName) {
			return true
		}
	}
	return false
}

// EnableClaudeHook points Claude's Stop hook at the vomgr continuation stub.
func (m *Manager) EnableClaudeHook() error {
	doc, err := m.loadJSON(m.ClaudeConfigPath())
	if err != nil {
		return err
	}
	// Plain double quotes; %q would escape backslashes in Windows paths.
	hookPath := hooks.NewManager(m.Home).ClaudeHookPath()
	command := "\"" + hookPath + "\" \"$CLAUDE_PROJECT_DIR\""

	hooksDoc, _ := doc["hooks"].(map[string]any)
	if hooksDoc == nil {
		hooksDoc = map[string]any{}
	}
	hooksDoc["Stop"] = []any{
		map[string]any{
			"hooks": []any{
				map[string]any{"type": "command", "command": command},
			},
		},
	}
	doc["hooks"] = hooksDoc

	if err := m.writeJSONWithRollback(m.ClaudeConfigPath(), doc); err != nil {
		return err
	}
	log.Info("claude Stop hook enabled")
	return nil
}

// DisableClaudeHook removes the Stop hook entry if present.
func (m *Manager) DisableClaudeHook() error {
	path := m.ClaudeConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	doc, err := m.loadJSON(path)
	if err != nil {
		return err
	}
	hooksDoc, ok := doc["hooks"].(map[string]any)
	if !ok {
		log.Debug("claude Stop hook already absent")
		return nil
	}
	if _, ok := hooksDoc["Stop"]; !ok {
		log.Debug("claude Stop hook already absent")
		return nil
	}
	delete(hooksDoc, "Stop")
	if len(hooksDoc) == 0 {
		delete(doc, "hooks")
	}
	return m.writeJSONWithRollback(path, doc)
}

// EnableCodexHook sets the Codex notify list to the vomgr continuation stub.
func (m *Manager) EnableCodexHook() error {
	doc, err := m.loadTOML(m.CodexConfigPath())
	if err != nil {
		return err
	}
	doc["notify"] = []string{hooks.NewManager(m.Home).CodexHookPath()}
	if err := m.writeTOMLWithRollback(m.CodexConfigPath(), doc); err != nil {
		return err
	}
	log.Info("codex notify hook enabled")
	return nil
}

// DisableCodexHook removes the notify entry if present.
func (m *Manager) DisableCodexHook() error {
	path := m.CodexConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	doc, err := m.loadTOML(path)
	if err != nil {
		return err
	}
	if _, ok := doc["notify"]; !ok {
		log.Debug("codex notify hook already absent")
		return nil
	}
	delete(doc, "notify")
	return m.writeTOMLWithRollback(path, doc)
}

// IsToolInstalled reports whether the tool binary is discoverable in PATH.
func (m *Manager) IsToolInstalled(tool string) bool {
	_, err := exec.LookPath(tool)
	return err == nil
}

// BackupLegacyConfigs snapshots every known tool config before a migration.
func (m *Manager) BackupLegacyConfigs() {
	for _, path := range []string{m.ClaudeConfigPath(), m.CodexConfigPath(), m.GeminiConfigPath()} {
		if _, err := m.Backup(path); err != nil {
			log.Warn("failed to back up legacy config", "path", path, "err", err)
		}
	}
}

// MigrateFromLegacy rewrites hook references left behind by the legacy
// claude4ever/codex4ever scripts to point at the modern stubs.
func (m *Manager) MigrateFromLegacy() error {
	hookMgr := hooks.NewManager(m.Home)

	if _, err := os.Stat(m.ClaudeConfigPath()); err == nil {
		if _, err := m.Backup(m.ClaudeConfigPath()); err != nil {
			return err
		}
		doc, err := m.loadJSON(m.ClaudeConfigPath())
		if err != nil {
			return err
		}
		command := "\"" + hookMgr.ClaudeHookPath() + "\" \"$CLAUDE_PROJECT_DIR\""
		changed := rewriteClaudeStop(doc, "claude4ever.py", command)
		if changed {
			if err := m.writeJSONWithRollback(m.ClaudeConfigPath(), doc); err != nil {
				return err
			}
		}
	}

	if _, err := os.Stat(m.CodexConfigPath()); err == nil {
		if _, err := m.Backup(m.CodexConfigPath()); err != nil {
			return err
		}
		doc, err := m.loadTOML(m.CodexConfigPath())
		if err != nil {
			return err
		}
		values := tomlStringSlice(doc["notify"])
		if len(values) > 0 {
			for i, item := range values {
				if containsHook(item, "codex4ever.py") {
					values[i] = hookMgr.CodexHookPath()
				}
			}
			doc["notify"] = values
			if err := m.writeTOMLWithRollback(m.CodexConfigPath(), doc); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetupConfigs creates empty config files for tools that have none yet.
func (m *Manager) SetupConfigs() error {
	if _, err := os.Stat(m.ClaudeConfigPath()); os.IsNotExist(err) {
		if err := m.writeJSONWithRollback(m.ClaudeConfigPath(), map[string]any{}); err != nil {
			return err
		}
	}
	if _, err := os.Stat(m.CodexConfigPath()); os.IsNotExist(err) {
		if err := m.writeTOMLWithRollback(m.CodexConfigPath(), map[string]any{}); err != nil {
			return err
		}
	}
	return nil
}

// RestoreDefaults disables every vomgr hook reference.
func (m *Manager) RestoreDefaults() error {
	if err := m.DisableClaudeHook(); err != nil {
		return err
	}
	return m.DisableCodexHook()
}

// Internal helpers

func (m *Manager) loadJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

func (m *Manager) loadTOML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

func (m *Manager) writeJSONWithRollback(target string, doc map[string]any) error {
	return m.writeWithRollback(target,
		func(path string) error {
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(path, append(data, '\n'), 0o644)
		},
		func(path string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			var check map[string]any
			return json.Unmarshal(data, &check)
		})
}

func (m *Manager) writeTOMLWithRollback(target string, doc map[string]any) error {
	return m.writeWithRollback(target,
		func(path string) error {
			data, err := toml.Marshal(doc)
			if err != nil {
				return err
			}
			return os.WriteFile(path, data, 0o644)
		},
		func(path string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			var check map[string]any
			return toml.Unmarshal(data, &check)
		})
}

// writeWithRollback implements the backup/write/validate/replace protocol.
func (m *Manager) writeWithRollback(target string, write, validate func(string) error) error {
	backup, err := m.Backup(target)
	if err != nil {
		return fmt.Errorf("failed to back up %s: %w", target, err)
	}

	tmp := target + ".tmp"
	_ = os.Remove(tmp)

	fail := func(cause error) error {
		_ = os.Remove(tmp)
		m.restoreFromBackup(target, backup)
		return cause
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fail(err)
	}
	if err := write(tmp); err != nil {
		return fail(err)
	}
	if err := validate(tmp); err != nil {
		return fail(fmt.Errorf("validation failed for %s: %w", target, err))
	}
	if err := os.Rename(tmp, target); err != nil {
		return fail(err)
	}
	return nil
}

// restoreFromBackup puts the previous content back, or removes the target
// when there was no file before the failed write.
func (m *Manager) restoreFromBackup(target, backup string) {
	if backup != "" {
		if data, err := os.ReadFile(backup); err == nil {
			_ = os.WriteFile(target, data, 0o644)
		}
		return
	}
	_ = os.Remove(target)
}

// claudeStopEntries decodes the hooks.Stop list from a generic JSON doc.
func claudeStopEntries(doc map[string]any) []claudeStopEntry {
	hooksDoc, ok := doc["hooks"].(map[string]any)
	if !ok {
		return nil
	}
	raw, err := json.Marshal(hooksDoc["Stop"])
	if err != nil {
		return nil
	}
	var entries []claudeStopEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

// rewriteClaudeStop replaces any Stop hook command containing marker.
func rewriteClaudeStop(doc map[string]any, marker, command string) bool {
	hooksDoc, ok := doc["hooks"].(map[string]any)
	if !ok {
		return false
	}
	stop, ok := hooksDoc["Stop"].([]any)
	if !ok {
		return false
	}
	changed := false
	for _, entry := range stop {
		entryDoc, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		inner, ok := entryDoc["hooks"].([]any)
		if !ok {
			continue
		}
		for _, h := range inner {
			hDoc, ok := h.(map[string]any)
			if !ok {
				continue
			}
			if cmd, ok := hDoc["command"].(string); ok && containsHook(cmd, marker) {
				hDoc["command"] = command
				changed = true
			}
		}
	}
	return changed
}

// tomlStringSlice coerces a decoded TOML array into strings.
func tomlStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func containsHook(command, name string) bool {
	return name != "" && strings.Contains(command, name)
}
