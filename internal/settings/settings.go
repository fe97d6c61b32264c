// Package settings loads, validates, and persists user settings for
// continuation behaviour. Settings live in ~/.vexy-overnight/settings.toml.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DirName is the per-user state directory under $HOME.
	DirName = ".vexy-overnight"
	// FileName is the settings file name inside DirName.
	FileName = "settings.toml"
)

// Tools lists the supported continuation tools in canonical order.
var Tools = []string{"claude", "codex", "gemini"}

// IsTool reports whether name is a supported continuation tool.
func IsTool(name string) bool {
	for _, t := range Tools {
		if t == name {
			return true
		}
	}
	return false
}

// DefaultPrompts are the built-in continuation prompt templates.
// Placeholders: {todo}, {plan}, {target}, {source}.
var DefaultPrompts = map[string]string{
	"claude": "Continue work in the next tool. Outstanding tasks:\n{todo}",
	"codex":  "Pick up the session with these TODOs:\n{todo}",
	"gemini": "Continue assisting with current plan:\n{plan}",
}

// DefaultTerminals are the built-in per-platform terminal launch templates.
// The last element of each template carries the {command} placeholder.
var DefaultTerminals = map[string][]string{
	"darwin":  {"open", "-a", "Terminal", "--args", "bash", "-lc", "{command}; exec bash"},
	"windows": {"wt", "powershell", "-NoExit", "-Command", "{command}"},
	"linux":   {"gnome-terminal", "--", "bash", "-lc", "{command}; exec bash"},
}

// ContinuationPrefs describe whether continuation is enabled for a source
// tool and which tool should pick up the work.
type ContinuationPrefs struct {
	Enabled bool   `toml:"enabled"`
	Target  string `toml:"target"`
}

// NotificationPrefs describe notification behaviour for continuation events.
type NotificationPrefs struct {
	Enabled bool   `toml:"enabled"`
	Message string `toml:"message"`
	Sound   string `toml:"sound"`
}

// TerminalPrefs store terminal launch command templates, keyed by platform
// ("darwin", "linux", "windows"), with optional per-tool overrides.
type TerminalPrefs struct {
	Defaults map[string][]string            `toml:"defaults"`
	PerTool  map[string]map[string][]string `toml:"per_tool"`
}

// CommandFor returns the terminal command template for tool on platformKey,
// preferring a per-tool override and falling back to the platform default.
// Returns nil when neither is configured.
func (t TerminalPrefs) CommandFor(tool, platformKey string) []string {
	if perTool, ok := t.PerTool[tool]; ok {
		if cmd := perTool[platformKey]; len(cmd) > 0 {
			return cmd
		}
	}
	return t.Defaults[platformKey]
}

// Settings is the persisted user configuration.
type Settings struct {
	Continuations   map[string]ContinuationPrefs `toml:"continuations"`
	Prompts         map[string]string            `toml:"prompts"`
	Notifications   NotificationPrefs            `toml:"notifications"`
	Terminals       TerminalPrefs                `toml:"terminals"`
	KillOldSessions bool                         `toml:"kill_old_sessions"`
}

// Default returns settings initialised with the bundled defaults:
// claude hands off to codex, codex back to claude, gemini stays disabled.
func Default() *Settings {
	prompts := make(map[string]string, len(DefaultPrompts))
	for tool, tpl := range DefaultPrompts {
		prompts[tool] = tpl
	}
	terminals := make(map[string][]string, len(DefaultTerminals))
	for key, cmd := range DefaultTerminals {
		terminals[key] = append([]string(nil), cmd...)
	}
	return &Settings{
		Continuations: map[string]ContinuationPrefs{
			"claude": {Enabled: true, Target: "codex"},
			"codex":  {Enabled: true, Target: "claude"},
			"gemini": {Enabled: false, Target: "claude"},
		},
		Prompts: prompts,
		Notifications: NotificationPrefs{
			Enabled: true,
			Message: "Continuing on {target}",
			Sound:   "success",
		},
		Terminals:       TerminalPrefs{Defaults: terminals},
		KillOldSessions: true,
	}
}

// Validate ensures every continuation target references a known tool.
func (s *Settings) Validate() error {
	for source, prefs := range s.Continuations {
		if !IsTool(prefs.Target) {
			return fmt.Errorf("unknown continuation target %q for %s", prefs.Target, source)
		}
	}
	return nil
}

// PromptFor returns the prompt template for tool, falling back to the claude
// template and finally to a bare "Continue".
func (s *Settings) PromptFor(tool string) string {
	if tpl := s.Prompts[tool]; tpl != "" {
		return tpl
	}
	if tpl := s.Prompts["claude"]; tpl != "" {
		return tpl
	}
	return "Continue"
}

// fileSettings mirrors Settings with optional fields so absent keys can be
// distinguished from explicit false values during load.
type fileSettings struct {
	Continuations   map[string]ContinuationPrefs `toml:"continuations"`
	Prompts         map[string]string            `toml:"prompts"`
	Notifications   fileNotifications            `toml:"notifications"`
	Terminals       TerminalPrefs                `toml:"terminals"`
	KillOldSessions *bool                        `toml:"kill_old_sessions"`
}

type fileNotifications struct {
	Enabled *bool  `toml:"enabled"`
	Message string `toml:"message"`
	Sound   string `toml:"sound"`
}

// fromFile merges decoded file content over the packaged defaults.
func fromFile(fs fileSettings) (*Settings, error) {
	s := Default()

	// The file is the full routing table: tools it omits are disabled, and a
	// missing [continuations] section disables every tool.
	for tool, prefs := range fs.Continuations {
		if prefs.Target == "" {
			prefs.Target = "claude"
		}
		s.Continuations[tool] = prefs
	}
	for _, tool := range Tools {
		if _, ok := fs.Continuations[tool]; !ok {
			s.Continuations[tool] = ContinuationPrefs{Enabled: false, Target: "claude"}
		}
	}
	for tool, tpl := range fs.Prompts {
		s.Prompts[tool] = tpl
	}
	if fs.Notifications.Enabled != nil {
		s.Notifications.Enabled = *fs.Notifications.Enabled
	}
	if fs.Notifications.Message != "" {
		s.Notifications.Message = fs.Notifications.Message
	}
	if fs.Notifications.Sound != "" {
		s.Notifications.Sound = fs.Notifications.Sound
	}
	if len(fs.Terminals.Defaults) > 0 {
		s.Terminals.Defaults = fs.Terminals.Defaults
	}
	if len(fs.Terminals.PerTool) > 0 {
		s.Terminals.PerTool = fs.Terminals.PerTool
	}
	if fs.KillOldSessions != nil {
		s.KillOldSessions = *fs.KillOldSessions
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the settings file location under home. An empty home resolves
// to the current user's home directory.
func Path(home string) string {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, DirName, FileName)
}

// Load reads settings from disk, creating and persisting defaults on first
// run.
func Load(home string) (*Settings, error) {
	path := Path(home)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s := Default()
			if _, err := Save(s, home); err != nil {
				return nil, err
			}
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var fs fileSettings
	if err := toml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return fromFile(fs)
}

// Save validates and persists settings, creating a timestamped backup of any
// existing file first. It returns the path written.
func Save(s *Settings, home string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	path := Path(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create settings dir: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		backup := path + ".backup." + time.Now().Format("20060102_150405")
		if data, err := os.ReadFile(path); err == nil {
			_ = os.WriteFile(backup, data, 0o644)
		}
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write settings: %w", err)
	}
	return path, nil
}
