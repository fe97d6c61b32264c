package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/launcher"
)

func usageRun() {
	fmt.Fprint(os.Stderr, `Usage: vomgr run <claude|codex|gemini> [options] [prompt...]

Launches a tool with continuation-friendly defaults.

Options:
  --cwd <dir>       Working directory for the session
  --model <name>    Model override (claude)
  --profile <name>  Profile override (codex)
  --exec            Non-interactive exec mode (codex)
  --prompt <text>   Initial prompt (may also be given as trailing args)
  -h, --help        Show this help
`)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		usageRun()
		return 2
	}
	tool := args[0]
	if tool == "--help" || tool == "-h" {
		usageRun()
		return 0
	}
	if !validTool(tool) {
		return 2
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageRun
	cwd := fs.String("cwd", "", "working directory")
	model := fs.String("model", "", "model override")
	profile := fs.String("profile", "", "profile override")
	execMode := fs.Bool("exec", false, "non-interactive exec mode")
	prompt := fs.String("prompt", "", "initial prompt")
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageRun()
		return 0
	}
	if *prompt == "" && fs.NArg() > 0 {
		*prompt = strings.Join(fs.Args(), " ")
	}

	m := launcher.NewManager()
	var err error
	switch tool {
	case "claude":
		err = m.LaunchClaude(launcher.ClaudeOptions{Cwd: *cwd, Model: *model, Prompt: *prompt})
	case "codex":
		err = m.LaunchCodex(launcher.CodexOptions{Cwd: *cwd, Profile: *profile, ExecMode: *execMode, Prompt: *prompt})
	case "gemini":
		err = m.LaunchGemini(launcher.GeminiOptions{Cwd: *cwd, Prompt: *prompt})
	}
	if err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	return 0
}
