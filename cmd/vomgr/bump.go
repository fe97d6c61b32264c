package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vexyart/vexy-overnight/internal/bump"
	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
)

func usageBump() {
	fmt.Fprint(os.Stderr, `Usage: vomgr bump [options]

Pulls, tags the next patch version (vX.Y.Z) and pushes the tag. The
working tree must be clean.

Options:
  -v, --verbose  Print each git command as it runs
  -h, --help     Show this help
`)
}

func cmdBump(args []string) int {
	fs := flag.NewFlagSet("bump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageBump
	verbose := fs.Bool("verbose", false, "print git commands")
	verboseShort := fs.Bool("v", false, "print git commands")
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageBump()
		return 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		errorf("%v\n", err)
		return 1
	}
	m := &bump.Manager{Dir: cwd, Verbose: *verbose || *verboseShort}
	tag, err := m.Run()
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	success("Tagged and pushed %s\n", tag)
	return 0
}
