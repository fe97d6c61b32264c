package handoff

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LaunchSpec is the persisted description of a pending continuation launch.
// The hook writes it next to the hook stubs and `vomgr relaunch` consumes it.
type LaunchSpec struct {
	Command []string          `json:"command"`
	Cwd     string            `json:"cwd"`
	Env     map[string]string `json:"env"`
}

// SpecPath returns the launch spec file for a hook stub, e.g.
// ~/.claude/hooks/vocl-go.json next to the vocl-go stub.
func SpecPath(hookPath string) string {
	ext := filepath.Ext(hookPath)
	if ext == ".cmd" {
		hookPath = hookPath[:len(hookPath)-len(ext)]
	}
	return hookPath + ".json"
}

// WriteSpec persists the launch spec for the relaunch helper.
func WriteSpec(path string, spec *LaunchSpec) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// ReadSpec loads a previously written launch spec.
func ReadSpec(path string) (*LaunchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec LaunchSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse launch spec %s: %w", path, err)
	}
	if len(spec.Command) == 0 {
		return nil, fmt.Errorf("launch spec %s has no command", path)
	}
	return &spec, nil
}

// RemoveSpec deletes a stale launch spec. Missing files are fine; hooks call
// this whenever continuation is disabled.
func RemoveSpec(path string) {
	_ = os.Remove(path)
}
