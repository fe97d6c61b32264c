// Command vocl launches the Claude CLI with continuation-friendly defaults.
// Any arguments are joined into the initial prompt.
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
	opts := launcher.ClaudeOptions{}
	for len(args) > 0 {
		switch args[0] {
		case "-m", "--model":
			if len(args) < 2 {
				fmt.Fprintln(os.Stderr, "Usage: vocl [-m model] [prompt...]")
				return 2
			}
			opts.Model = args[1]
			args = args[2:]
		case "--help", "-h":
			fmt.Fprintln(os.Stderr, "Usage: vocl [-m model] [prompt...]")
			return 0
		default:
			opts.Prompt = strings.Join(args, " ")
			args = nil
		}
	}

	if err := launcher.NewManager().LaunchClaude(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return voerrors.GetExitCode(err)
	}
	return 0
}
