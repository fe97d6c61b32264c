// Package bump creates and pushes the next patch-version git tag.
package bump

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
)

// Manager runs the bump workflow in Dir (the process working directory when
// empty).
type Manager struct {
	Dir     string
	Verbose bool
}

// IsGitRepo reports whether the directory has a .git entry.
func (m *Manager) IsGitRepo() bool {
	dir := m.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// IsClean reports whether the working tree has no pending changes.
func (m *Manager) IsClean() bool {
	out, err := m.git("status", "--porcelain")
	return err == nil && strings.TrimSpace(out) == ""
}

// NextVersion returns the next patch version based on existing v*.*.* tags.
// No tags (or only malformed ones) yields v1.0.0.
func (m *Manager) NextVersion() string {
	out, err := m.git("tag", "-l", "v*.*.*")
	if err != nil {
		return "v1.0.0"
	}
	var best [3]int
	found := false
	for _, tag := range strings.Fields(out) {
		version, ok := parseTag(tag)
		if !ok {
			continue
		}
		if !found || greater(version, best) {
			best = version
			found = true
		}
	}
	if !found {
		return "v1.0.0"
	}
	return fmt.Sprintf("v%d.%d.%d", best[0], best[1], best[2]+1)
}

// Run pulls, computes the next version, tags it and pushes commits and tags.
func (m *Manager) Run() (string, error) {
	if !m.IsGitRepo() {
		return "", voerrors.NewValidationError("not a git repository")
	}
	if !m.IsClean() {
		return "", voerrors.NewValidationError("working tree not clean, commit changes first")
	}

	if m.Verbose {
		log.Info("pulling latest changes")
	}
	if out, err := m.git("pull"); err != nil {
		return "", voerrors.NewGeneralErrorWithCause(
			"failed to pull from remote: "+strings.TrimSpace(out), err)
	}

	version := m.NextVersion()
	log.Info("creating version", "tag", version)

	if out, err := m.git("tag", version); err != nil {
		return "", voerrors.NewGeneralErrorWithCause(
			"failed to create tag: "+strings.TrimSpace(out), err)
	}
	if out, err := m.git("push"); err != nil {
		return "", voerrors.NewGeneralErrorWithCause(
			"failed to push commits: "+strings.TrimSpace(out), err)
	}
	if out, err := m.git("push", "--tags"); err != nil {
		return "", voerrors.NewGeneralErrorWithCause(
			"failed to push tags: "+strings.TrimSpace(out), err)
	}
	return version, nil
}

func (m *Manager) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = m.Dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// parseTag parses vMAJOR.MINOR.PATCH. Anything else is rejected.
func parseTag(tag string) ([3]int, bool) {
	var version [3]int
	if !strings.HasPrefix(tag, "v") {
		return version, false
	}
	parts := strings.Split(tag[1:], ".")
	if len(parts) != 3 {
		return version, false
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return version, false
		}
		version[i] = n
	}
	return version, true
}

func greater(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}
