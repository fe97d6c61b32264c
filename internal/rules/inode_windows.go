//go:build windows

package rules

import "path/filepath"

// inodeSet tracks visited files. Windows has no user-visible inodes so the
// resolved path stands in; hard links are rare there anyway.
type inodeSet struct {
	seen map[string]bool
}

func newInodeSet() *inodeSet {
	return &inodeSet{seen: make(map[string]bool)}
}

func (s *inodeSet) visited(path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	if s.seen[resolved] {
		return true
	}
	s.seen[resolved] = true
	return false
}
