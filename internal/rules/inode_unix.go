//go:build !windows

package rules

import (
	"os"
	"syscall"
)

// inodeSet tracks visited files by device and inode so hard linked copies
// are only processed once.
type inodeSet struct {
	seen map[[2]uint64]bool
}

func newInodeSet() *inodeSet {
	return &inodeSet{seen: make(map[[2]uint64]bool)}
}

func (s *inodeSet) visited(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	key := [2]uint64{uint64(stat.Dev), uint64(stat.Ino)}
	if s.seen[key] {
		return true
	}
	s.seen[key] = true
	return false
}
