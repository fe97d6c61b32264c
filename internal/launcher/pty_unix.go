//go:build !windows

package launcher

import (
	"io"
	"os"

	"github.com/creack/pty"
)

// startPlatform starts the command with a PTY on Unix systems.
func (p *PTYExecutor) startPlatform() error {
	ptmx, err := pty.Start(p.cmd)
	if err != nil {
		return p.startStandard()
	}
	p.pty = ptmx
	p.output = ptmx
	return nil
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
