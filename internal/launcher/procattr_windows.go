//go:build windows

package launcher

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// detachedProcAttr gives the child its own process group and console.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
}
