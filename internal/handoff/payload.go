package handoff

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EnvClaudeProjectDir is set by the Claude CLI when its hooks fire.
const EnvClaudeProjectDir = "CLAUDE_PROJECT_DIR"

// Payload is the JSON document a CLI tool streams to its hook on stdin. The
// schema varies per tool so everything is kept generic.
type Payload map[string]any

// ReadPayload decodes the hook payload from r. Empty or malformed input
// yields an empty payload rather than an error; hooks must never fail on
// unexpected tool output.
func ReadPayload(r io.Reader) Payload {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Payload{}
	}
	if strings.TrimSpace(string(raw)) == "" {
		return Payload{}
	}
	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Payload{}
	}
	if payload == nil {
		return Payload{}
	}
	return payload
}

// stringField returns the named payload value when it is a non-blank string.
func (p Payload) stringField(key string) string {
	if value, ok := p[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// existingDir expands ~ and returns the path when it names something that
// exists on disk.
func existingDir(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	if _, err := os.Stat(value); err != nil {
		return ""
	}
	return value
}

// cwdFallback resolves $PWD or the process working directory.
func cwdFallback() string {
	if pwd := existingDir(os.Getenv("PWD")); pwd != "" {
		return pwd
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// ClaudeProjectDir resolves the active project directory for a Claude hook:
// $CLAUDE_PROJECT_DIR, then the payload's project_dir or cwd, then $PWD,
// then the process working directory.
func ClaudeProjectDir(payload Payload) string {
	if dir := existingDir(os.Getenv(EnvClaudeProjectDir)); dir != "" {
		return dir
	}
	for _, key := range []string{"project_dir", "cwd"} {
		if dir := existingDir(payload.stringField(key)); dir != "" {
			return dir
		}
	}
	return cwdFallback()
}

// contextMapping normalizes the Codex payload's context field, which may be
// a dict, a JSON-encoded string, or a bare path.
func contextMapping(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case string:
		stripped := strings.TrimSpace(v)
		if stripped == "" {
			return nil
		}
		var loaded map[string]any
		if err := json.Unmarshal([]byte(stripped), &loaded); err == nil {
			return loaded
		}
		if dir := existingDir(stripped); dir != "" {
			return map[string]any{"cwd": dir}
		}
	}
	return nil
}

// latestCodexSessionDir scans ~/.codex/sessions/*.jsonl newest-first for a
// record whose cwd still exists.
func latestCodexSessionDir(home string) string {
	streams, err := filepath.Glob(filepath.Join(home, ".codex", "sessions", "*.jsonl"))
	if err != nil || len(streams) == 0 {
		return ""
	}
	sort.Slice(streams, func(i, j int) bool {
		si, errI := os.Stat(streams[i])
		sj, errJ := os.Stat(streams[j])
		if errI != nil || errJ != nil {
			return errJ != nil
		}
		return si.ModTime().After(sj.ModTime())
	})
	for _, stream := range streams {
		data, err := os.ReadFile(stream)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			var record map[string]any
			if err := json.Unmarshal([]byte(line), &record); err != nil {
				continue
			}
			if cwd, ok := record["cwd"].(string); ok {
				if dir := existingDir(cwd); dir != "" {
					return dir
				}
			}
		}
	}
	return ""
}

// CodexProjectDir resolves the working directory for a Codex hook: the
// payload's context (dict, JSON string or path), then the payload cwd, then
// the newest session log under home, then $PWD, then the process working
// directory.
func CodexProjectDir(payload Payload, home string) string {
	ctx := contextMapping(payload["context"])
	for _, key := range []string{"cwd", "working_directory"} {
		if value, ok := ctx[key].(string); ok {
			if dir := existingDir(value); dir != "" {
				return dir
			}
		}
	}
	if dir := existingDir(payload.stringField("cwd")); dir != "" {
		return dir
	}
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if dir := latestCodexSessionDir(home); dir != "" {
		return dir
	}
	return cwdFallback()
}

// ProjectDir dispatches to the per-tool resolution strategy. Gemini uses the
// Claude rules minus the environment override.
func ProjectDir(tool string, payload Payload, home string) string {
	switch tool {
	case "codex":
		return CodexProjectDir(payload, home)
	case "claude":
		return ClaudeProjectDir(payload)
	}
	for _, key := range []string{"project_dir", "cwd"} {
		if dir := existingDir(payload.stringField(key)); dir != "" {
			return dir
		}
	}
	return cwdFallback()
}
