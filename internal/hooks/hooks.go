// Package hooks installs and removes the continuation hook stubs that the
// external CLI tools invoke when a session ends. Each stub is a small
// executable script that execs back into the vomgr binary, so the hand-off
// logic lives in one compiled program instead of per-tool scripts.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// Hook stub base names, one per tool.
const (
	ClaudeHookName = "vocl-go"
	CodexHookName  = "voco-go"
	GeminiHookName = "voge-go"
)

// Manager installs continuation hooks for Claude, Codex, and Gemini.
type Manager struct {
	Home string
	// Binary is the vomgr executable the stubs exec into. Defaults to the
	// running executable.
	Binary string
}

// NewManager creates a hook manager rooted at home. An empty home resolves
// to the current user's home directory.
func NewManager(home string) *Manager {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	bin, err := os.Executable()
	if err != nil {
		bin = "vomgr"
	}
	return &Manager{Home: home, Binary: bin}
}

// ClaudeHookPath returns the Claude Stop hook location.
func (m *Manager) ClaudeHookPath() string {
	return filepath.Join(m.Home, ".claude", "hooks", stubName(ClaudeHookName))
}

// CodexHookPath returns the Codex notify hook location.
func (m *Manager) CodexHookPath() string {
	return filepath.Join(m.Home, ".codex", stubName(CodexHookName))
}

// GeminiHookPath returns the Gemini hook location.
func (m *Manager) GeminiHookPath() string {
	return filepath.Join(m.Home, ".gemini", stubName(GeminiHookName))
}

// HookPath returns the hook stub location for tool, defaulting to claude.
func (m *Manager) HookPath(tool string) string {
	switch tool {
	case "codex":
		return m.CodexHookPath()
	case "gemini":
		return m.GeminiHookPath()
	}
	return m.ClaudeHookPath()
}

// InstallHooks writes all continuation hook stubs.
func (m *Manager) InstallHooks() error {
	stubs := []struct {
		path string
		tool string
	}{
		{m.ClaudeHookPath(), "claude"},
		{m.CodexHookPath(), "codex"},
		{m.GeminiHookPath(), "gemini"},
	}
	for _, s := range stubs {
		if err := m.writeStub(s.path, s.tool); err != nil {
			return fmt.Errorf("failed to install %s hook: %w", s.tool, err)
		}
		log.Debug("installed hook", "tool", s.tool, "path", s.path)
	}
	return nil
}

// UninstallHooks removes every installed hook stub. Missing stubs are
// ignored.
func (m *Manager) UninstallHooks() error {
	for _, path := range []string{m.ClaudeHookPath(), m.CodexHookPath(), m.GeminiHookPath()} {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove hook %s: %w", path, err)
		}
		if err == nil {
			log.Debug("removed hook", "path", path)
		}
	}
	return nil
}

// writeStub writes an executable stub that pipes the hook payload through to
// `vomgr hook <tool>`.
func (m *Manager) writeStub(path, tool string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var content string
	if runtime.GOOS == "windows" {
		content = fmt.Sprintf("@echo off\r\n\"%s\" hook %s %%*\r\n", m.Binary, tool)
	} else {
		content = fmt.Sprintf("#!/bin/sh\nexec \"%s\" hook %s \"$@\"\n", m.Binary, tool)
	}
	return os.WriteFile(path, []byte(content), 0o755)
}

// stubName appends the platform script extension on Windows.
func stubName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".cmd"
	}
	return base
}
