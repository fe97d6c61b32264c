package bump

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
)

// setupRepo initialises a git repository with one commit.
func setupRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "-A")
	run("commit", "-m", "initial")
	return dir
}

func tag(t *testing.T, dir, name string) {
	t.Helper()
	cmd := exec.Command("git", "tag", name)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git tag %s: %v\n%s", name, err, out)
	}
}

func TestIsGitRepo(t *testing.T) {
	m := &Manager{Dir: t.TempDir()}
	if m.IsGitRepo() {
		t.Error("plain directory should not count as a repo")
	}

	m.Dir = setupRepo(t)
	if !m.IsGitRepo() {
		t.Error("initialised repo not detected")
	}
}

func TestIsClean(t *testing.T) {
	dir := setupRepo(t)
	m := &Manager{Dir: dir}

	if !m.IsClean() {
		t.Error("fresh repo should be clean")
	}

	if err := os.WriteFile(filepath.Join(dir, "dirty.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m.IsClean() {
		t.Error("untracked file should make the tree dirty")
	}
}

func TestNextVersion(t *testing.T) {
	dir := setupRepo(t)
	m := &Manager{Dir: dir}

	if got := m.NextVersion(); got != "v1.0.0" {
		t.Errorf("no tags should yield v1.0.0, got %q", got)
	}

	tag(t, dir, "v1.0.0")
	tag(t, dir, "v1.2.3")
	tag(t, dir, "v1.2.10")
	if got := m.NextVersion(); got != "v1.2.11" {
		t.Errorf("NextVersion() = %q, want v1.2.11", got)
	}
}

func TestNextVersionIgnoresMalformedTags(t *testing.T) {
	dir := setupRepo(t)
	m := &Manager{Dir: dir}

	tag(t, dir, "v1.0.0")
	tag(t, dir, "v2.x.0")
	if got := m.NextVersion(); got != "v1.0.1" {
		t.Errorf("malformed tags should rank lowest, got %q", got)
	}
}

func TestRunRefusesDirtyTree(t *testing.T) {
	dir := setupRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "wip.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &Manager{Dir: dir}
	_, err := m.Run()
	if !voerrors.IsValidationError(err) {
		t.Errorf("dirty tree should yield a validation error, got %v", err)
	}
}

func TestRunRefusesNonRepo(t *testing.T) {
	m := &Manager{Dir: t.TempDir()}
	_, err := m.Run()
	if !voerrors.IsValidationError(err) {
		t.Errorf("non-repo should yield a validation error, got %v", err)
	}
}
