// Package updater keeps the external CLI toolchain current: it checks
// installed versions, runs npm/brew upgrades from a configurable catalog,
// and checks GitHub for newer vomgr releases.
package updater

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vexyart/vexy-overnight/internal/settings"
)

// UpdateLogName is the persistent update log under the state directory.
const UpdateLogName = "update.log"

const versionTimeout = 5 * time.Second

var semverPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// VersionInfo pairs the observed current version with the nominal available
// one for a tool.
type VersionInfo struct {
	Current   string
	Available string
}

// Manager coordinates version checks and updates. The run hook exists so
// tests can observe commands without executing them.
type Manager struct {
	Home string

	run func(timeout time.Duration, name string, args ...string) (string, error)
}

// NewManager creates an update manager rooted at home.
func NewManager(home string) *Manager {
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return &Manager{Home: home, run: runCommand}
}

func runCommand(timeout time.Duration, name string, args ...string) (string, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// LogPath returns ~/.vexy-overnight/update.log.
func (m *Manager) LogPath() string {
	return filepath.Join(m.Home, settings.DirName, UpdateLogName)
}

// toolVersion runs `tool --version` and extracts a semver from the output.
func (m *Manager) toolVersion(tool string) string {
	out, err := m.run(versionTimeout, tool, "--version")
	if err != nil {
		log.Debug("version probe failed", "tool", tool, "err", err)
		return "not installed"
	}
	out = strings.TrimSpace(out)
	if match := semverPattern.FindString(out); match != "" {
		return match
	}
	if fields := strings.Fields(out); len(fields) > 0 {
		return fields[0]
	}
	return "unknown"
}

// CheckVersions returns current and nominally available versions for every
// tool in the catalog.
func (m *Manager) CheckVersions() map[string]VersionInfo {
	catalog := LoadCatalog(m.Home)
	versions := make(map[string]VersionInfo)
	for tool, pkg := range catalog.NPM {
		available := "latest"
		if strings.Contains(pkg, "@nightly") {
			available = "nightly"
		}
		versions[tool] = VersionInfo{Current: m.toolVersion(tool), Available: available}
	}
	for _, pkg := range catalog.Brew {
		versions[pkg] = VersionInfo{Current: m.toolVersion(pkg), Available: "latest"}
	}
	return versions
}

// UpdateCLITools upgrades every catalog entry not listed in skip. With
// dryRun the commands are only logged.
func (m *Manager) UpdateCLITools(dryRun bool, skip []string) {
	catalog := LoadCatalog(m.Home)
	skipped := make(map[string]bool, len(skip))
	for _, tool := range skip {
		skipped[tool] = true
	}

	m.logUpdate(fmt.Sprintf("Starting CLI tools update. Versions before: %v", m.CheckVersions()))

	for tool, pkg := range catalog.NPM {
		if skipped[tool] {
			log.Info("skipping", "tool", tool)
			continue
		}
		if dryRun {
			log.Info("[dry run] would run", "command", "npm install -g "+pkg)
			continue
		}
		log.Info("updating", "tool", tool)
		if out, err := m.run(0, "npm", "install", "-g", pkg); err != nil {
			log.Warn("update failed", "tool", tool, "err", err, "output", strings.TrimSpace(out))
		} else {
			log.Info("updated", "tool", tool)
		}
	}

	for _, pkg := range catalog.Brew {
		if skipped[pkg] {
			log.Info("skipping", "tool", pkg)
			continue
		}
		if dryRun {
			log.Info("[dry run] would run", "command", "brew upgrade "+pkg)
			continue
		}
		log.Info("updating", "tool", pkg)
		_, _ = m.run(0, "brew", "update")
		if out, err := m.run(0, "brew", "upgrade", pkg); err != nil && !strings.Contains(out, "already installed") {
			log.Warn("update failed", "tool", pkg, "err", err, "output", strings.TrimSpace(out))
		} else {
			log.Info("updated", "tool", pkg)
		}
	}

	if !dryRun {
		m.logUpdate(fmt.Sprintf("CLI tools update complete. Versions after: %v", m.CheckVersions()))
	}
}

// logUpdate appends a timestamped line to the update log. Best effort.
func (m *Manager) logUpdate(message string) {
	path := m.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
}
