package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMissing(t *testing.T) {
	m := NewManager(t.TempDir())

	state, err := m.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if state != nil {
		t.Errorf("Read() = %+v, want nil for missing file", state)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := NewManager(t.TempDir())

	written, err := m.Write("claude", 12345, "/work/project")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if written.StartTime == "" {
		t.Error("Write() should stamp a start time")
	}

	state, err := m.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if state == nil {
		t.Fatal("Read() = nil after Write()")
	}
	if state.Tool != "claude" || state.PID != 12345 || state.CWD != "/work/project" {
		t.Errorf("Read() = %+v", state)
	}
}

func TestWriteDefaultsCwd(t *testing.T) {
	m := NewManager(t.TempDir())

	state, err := m.Write("codex", 99, "")
	if err != nil {
		t.Fatal(err)
	}
	if state.CWD == "" {
		t.Error("empty cwd should default to the working directory")
	}
}

func TestReadCorrupt(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	if err := os.WriteFile(m.Path(), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := m.Read()
	if err != nil || state != nil {
		t.Errorf("corrupt state should read as nil, nil; got %+v, %v", state, err)
	}

	// Structurally valid but empty documents are treated the same way.
	if err := os.WriteFile(m.Path(), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	state, err = m.Read()
	if err != nil || state != nil {
		t.Errorf("empty state should read as nil, nil; got %+v, %v", state, err)
	}
}

func TestClear(t *testing.T) {
	m := NewManager(t.TempDir())

	if err := m.Clear(); err != nil {
		t.Errorf("Clear() on missing file error = %v", err)
	}

	if _, err := m.Write("gemini", 7, "/tmp"); err != nil {
		t.Fatal(err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(m.Path()); !os.IsNotExist(err) {
		t.Error("Clear() should remove the state file")
	}
}

func TestKillOldNoMatch(t *testing.T) {
	m := NewManager(t.TempDir())

	if m.KillOld(nil) {
		t.Error("nil state should never kill")
	}

	// A PID that cannot exist.
	if m.KillOld(&State{Tool: "claude", PID: 1 << 30}) {
		t.Error("dead PID should not report a kill")
	}

	// Our own test process is alive but not named after a CLI tool.
	if m.KillOld(&State{Tool: "claude", PID: int32(os.Getpid())}) {
		t.Error("processes with unrelated names must be left alone")
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	// Seed an old session pointing at a dead PID so Rotate's kill path is a
	// no-op and the new state still lands.
	if _, err := m.Write("claude", 1<<30-1, "/old"); err != nil {
		t.Fatal(err)
	}

	state, err := m.Rotate("codex", 4242, "/new", true)
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}
	if state.Tool != "codex" || state.PID != 4242 || state.CWD != "/new" {
		t.Errorf("Rotate() wrote %+v", state)
	}

	read, err := m.Read()
	if err != nil || read == nil || read.Tool != "codex" {
		t.Errorf("Read() after Rotate() = %+v, %v", read, err)
	}

	if filepath.Dir(m.Path()) != dir {
		t.Errorf("state file should live under %s", dir)
	}
}
