//go:build windows

package launcher

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/UserExistsError/conpty"
)

// startPlatform starts the command through ConPTY when the host supports it,
// otherwise falls back to plain pipes.
func (p *PTYExecutor) startPlatform() error {
	if !isConPtyAvailable() {
		return p.startStandard()
	}

	commandLine := buildCommandLine(p.cmd.Path, p.cmd.Args[1:])
	var options []conpty.ConPtyOption
	if p.cmd.Dir != "" {
		options = append(options, conpty.ConPtyWorkDir(p.cmd.Dir))
	}
	cpty, err := conpty.Start(commandLine, options...)
	if err != nil {
		return p.startStandard()
	}

	p.pty = cpty
	p.output = cpty
	p.wait = func() error {
		_, err := cpty.Wait(context.Background())
		return err
	}
	p.kill = cpty.Close
	return nil
}

func isConPtyAvailable() bool {
	return conpty.IsConPtyAvailable()
}

// startStandard starts the command without a PTY (fallback mode).
func (p *PTYExecutor) startStandard() error {
	p.fallback = true

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := p.cmd.StderrPipe()
	if err != nil {
		return err
	}
	p.output = io.MultiReader(stdout, stderr)
	p.cmd.Stdin = os.Stdin

	return p.cmd.Start()
}

// buildCommandLine joins a path and arguments into a Windows command line.
func buildCommandLine(path string, args []string) string {
	parts := []string{quoteArg(path)}
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

// quoteArg quotes an argument when it contains whitespace or quotes.
func quoteArg(arg string) string {
	if !strings.ContainsAny(arg, " \t\"") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}
