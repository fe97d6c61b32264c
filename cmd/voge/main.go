// Command voge launches the Gemini CLI in continue mode. Any arguments are
// joined into the initial prompt.
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
	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		fmt.Fprintln(os.Stderr, "Usage: voge [prompt...]")
		return 0
	}

	opts := launcher.GeminiOptions{Prompt: strings.Join(args, " ")}
	if err := launcher.NewManager().LaunchGemini(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return voerrors.GetExitCode(err)
	}
	return 0
}
