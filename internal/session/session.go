// Package session persists metadata about the currently running CLI session
// so continuation hooks can terminate a stale process before starting the
// next one. State is a single JSON file; reads tolerate corruption.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

// FileName is the session state file under the state directory.
const FileName = "session_state.json"

const killWait = 5 * time.Second

// State describes one launched CLI process.
type State struct {
	Tool      string `json:"tool"`
	PID       int32  `json:"pid"`
	StartTime string `json:"start_time"`
	CWD       string `json:"cwd"`
}

// Manager reads and writes the session state file.
type Manager struct {
	StateDir string
}

// NewManager creates a manager storing state under stateDir. An empty
// stateDir resolves to ~/.vexy-overnight.
func NewManager(stateDir string) *Manager {
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, settings.DirName)
	}
	return &Manager{StateDir: stateDir}
}

// Path returns the session state file location.
func (m *Manager) Path() string {
	return filepath.Join(m.StateDir, FileName)
}

// Read returns the persisted session, or nil when the file is missing or
// corrupt. Corruption is not an error; the state is advisory.
func (m *Manager) Read() (*State, error) {
	data, err := os.ReadFile(m.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Debug("ignoring corrupt session state", "path", m.Path(), "err", err)
		return nil, nil
	}
	if state.Tool == "" || state.PID == 0 {
		return nil, nil
	}
	return &state, nil
}

// Write persists metadata for a freshly launched session. An empty cwd
// defaults to the process working directory.
func (m *Manager) Write(tool string, pid int32, cwd string) (*State, error) {
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	state := &State{
		Tool:      tool,
		PID:       pid,
		StartTime: time.Now().Format(time.RFC3339),
		CWD:       cwd,
	}
	if err := os.MkdirAll(m.StateDir, 0o755); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(m.Path(), append(data, '\n'), 0o644); err != nil {
		return nil, err
	}
	return state, nil
}

// Clear deletes the state file when present.
func (m *Manager) Clear() error {
	err := os.Remove(m.Path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// KillOld terminates the process described by state if it is still alive and
// its name matches one of the known CLI tools. Best effort; reports whether
// a matching process was terminated.
func (m *Manager) KillOld(state *State) bool {
	if state == nil {
		return false
	}
	exists, err := process.PidExists(state.PID)
	if err != nil || !exists {
		return false
	}
	proc, err := process.NewProcess(state.PID)
	if err != nil {
		return false
	}
	name, err := proc.Name()
	if err != nil {
		return false
	}
	name = strings.ToLower(name)
	matched := false
	for _, tool := range settings.Tools {
		if strings.Contains(name, tool) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	if err := proc.Terminate(); err != nil {
		log.Debug("terminate failed", "pid", state.PID, "err", err)
		return false
	}
	deadline := time.Now().Add(killWait)
	for time.Now().Before(deadline) {
		if running, err := proc.IsRunning(); err != nil || !running {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err := proc.Kill(); err != nil {
		log.Debug("kill failed", "pid", state.PID, "err", err)
	}
	return true
}

// Rotate persists a new session, optionally terminating the previous one
// first. The old-process kill is best effort and never blocks the write.
func (m *Manager) Rotate(tool string, pid int32, cwd string, killOld bool) (*State, error) {
	old, err := m.Read()
	if err != nil {
		return nil, err
	}
	if killOld && old != nil {
		if m.KillOld(old) {
			log.Debug("terminated stale session", "tool", old.Tool, "pid", old.PID)
		}
	}
	return m.Write(tool, pid, cwd)
}
