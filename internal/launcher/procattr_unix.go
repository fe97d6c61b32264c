//go:build !windows

package launcher

import "syscall"

// detachedProcAttr puts the child in its own process group so terminating
// the hook process does not take the launched CLI down with it.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
