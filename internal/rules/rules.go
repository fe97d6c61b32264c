// Package rules synchronises and edits the shared instruction files the CLI
// tools read (CLAUDE.md, AGENTS.md and friends), either in the current
// project or across the global per-tool config directories.
package rules

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// InstructionFiles are the file names the manager operates on.
var InstructionFiles = []string{
	"CLAUDE.md",
	"AGENTS.md",
	"GEMINI.md",
	"QWEN.md",
	"LLXPRT.md",
	".cursorrules",
}

// globalDirNames are the per-tool config directories under the user's home.
var globalDirNames = []string{".claude", ".codex", ".gemini", ".qwen", ".llxprt", ".cursor"}

// Manager discovers and edits instruction files within its search paths.
type Manager struct {
	SearchPaths []string
}

// NewManager creates a manager scoped to the current working directory, or
// to the global config directories under home when globalMode is set.
func NewManager(globalMode bool, home string) *Manager {
	if !globalMode {
		cwd, _ := os.Getwd()
		return &Manager{SearchPaths: []string{cwd}}
	}
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	paths := make([]string, 0, len(globalDirNames))
	for _, name := range globalDirNames {
		paths = append(paths, filepath.Join(home, name))
	}
	return &Manager{SearchPaths: paths}
}

// FindInstructionFiles discovers instruction files within the search paths,
// keyed by file name.
func (m *Manager) FindInstructionFiles() map[string][]string {
	found := make(map[string][]string, len(InstructionFiles))
	for _, filename := range InstructionFiles {
		found[filename] = nil
	}
	for _, root := range m.SearchPaths {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			for _, filename := range InstructionFiles {
				if name == filename {
					found[filename] = append(found[filename], path)
					break
				}
			}
			return nil
		})
	}
	return found
}

// parentFile selects the newest non-empty file as the canonical copy.
func parentFile(paths []string) string {
	type candidate struct {
		path    string
		modTime int64
	}
	var valid []candidate
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			continue
		}
		valid = append(valid, candidate{path, info.ModTime().UnixNano()})
	}
	if len(valid) == 0 {
		return ""
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].modTime > valid[j].modTime })
	return valid[0].path
}

// Sync links every copy of each instruction file to its canonical parent.
// Hard links are preferred; symlinks are the fallback.
func (m *Manager) Sync() {
	for filename, paths := range m.FindInstructionFiles() {
		if len(paths) < 2 {
			continue
		}
		parent := parentFile(paths)
		if parent == "" {
			continue
		}
		log.Debug("syncing instruction file", "name", filename, "parent", parent)
		for _, path := range paths {
			if path == parent {
				continue
			}
			if err := relink(parent, path); err != nil {
				log.Warn("failed to link instruction file", "path", path, "err", err)
			}
		}
	}
}

func relink(parent, path string) error {
	_ = os.Remove(path)
	if err := os.Link(parent, path); err == nil {
		return nil
	}
	return os.Symlink(parent, path)
}

// Append appends text to the canonical copy of each instruction file. Hard
// linked copies pick the change up for free.
func (m *Manager) Append(text string) {
	for filename, paths := range m.FindInstructionFiles() {
		parent := parentFile(paths)
		if parent == "" {
			continue
		}
		f, err := os.OpenFile(parent, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Warn("failed to open instruction file", "path", parent, "err", err)
			continue
		}
		_, err = fmt.Fprintf(f, "\n%s\n", text)
		f.Close()
		if err != nil {
			log.Warn("failed to append to instruction file", "path", parent, "err", err)
			continue
		}
		log.Info("appended text", "name", filename)
	}
}

// Search returns lines containing pattern from each instruction file, keyed
// by file name. Hard linked duplicates are visited once.
func (m *Manager) Search(pattern string) map[string][]string {
	results := make(map[string][]string)
	for filename, paths := range m.FindInstructionFiles() {
		var matches []string
		seen := newInodeSet()
		for _, path := range paths {
			if seen.visited(path) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				log.Debug("error searching instruction file", "path", path, "err", err)
				continue
			}
			for i, line := range strings.Split(string(data), "\n") {
				if strings.Contains(line, pattern) {
					matches = append(matches, fmt.Sprintf("%s:%d: %s", path, i+1, strings.TrimSpace(line)))
				}
			}
		}
		if len(matches) > 0 {
			results[filename] = matches
		}
	}
	return results
}

// Replace substitutes searchText with replaceText across all instruction
// files, visiting each inode only once.
func (m *Manager) Replace(searchText, replaceText string) {
	seen := newInodeSet()
	for _, paths := range m.FindInstructionFiles() {
		for _, path := range paths {
			if seen.visited(path) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			content := string(data)
			if !strings.Contains(content, searchText) {
				continue
			}
			updated := strings.ReplaceAll(content, searchText, replaceText)
			if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
				log.Warn("failed to replace in instruction file", "path", path, "err", err)
				continue
			}
			log.Info("replaced text", "path", path)
		}
	}
}
