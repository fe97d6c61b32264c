// Command voco launches the Codex CLI with continuation-friendly defaults.
// -m selects a profile, -p together with -e runs a prompt in exec mode.
package main

import (
	"fmt"
	"os"
	"strings"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/launcher"
)

func main() {
	os.Exit(run())
}

func run() int {
	args := os.Args[1:]
	opts := launcher.CodexOptions{}
	for len(args) > 0 {
		switch args[0] {
		case "-m", "--profile":
			if len(args) < 2 {
				usage()
				return 2
			}
			opts.Profile = args[1]
			args = args[2:]
		case "-e", "--exec":
			opts.ExecMode = true
			args = args[1:]
		case "-p", "--prompt":
			if len(args) < 2 {
				usage()
				return 2
			}
			opts.Prompt = args[1]
			args = args[2:]
		case "--help", "-h":
			usage()
			return 0
		default:
			opts.Prompt = strings.Join(args, " ")
			args = nil
		}
	}

	if err := launcher.NewManager().LaunchCodex(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return voerrors.GetExitCode(err)
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: voco [-m profile] [-e] [-p prompt] [prompt...]")
}
