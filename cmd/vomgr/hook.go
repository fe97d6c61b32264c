package main

import (
	"os"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/handoff"
)

// cmdHook is the entry point the installed hook stubs call when a tool
// session stops. The hook payload arrives on stdin.
func cmdHook(args []string) int {
	if len(args) < 1 {
		errorf("Usage: vomgr hook <tool>\n")
		return 2
	}
	r := handoff.NewRunner("", "")
	if err := r.HandleHook(args[0], os.Stdin); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	return 0
}

// cmdRelaunch consumes the launch spec a hook wrote and starts the
// continuation tool, usually inside a freshly spawned terminal.
func cmdRelaunch(args []string) int {
	if len(args) < 1 {
		errorf("Usage: vomgr relaunch <tool>\n")
		return 2
	}
	r := handoff.NewRunner("", "")
	if err := r.Relaunch(args[0]); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	return 0
}
