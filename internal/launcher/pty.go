package launcher

import (
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"
)

// PTYExecutor runs a command behind a pseudo-terminal so interactive CLIs
// keep their TTY behavior. Falls back to plain pipes when no PTY can be
// allocated.
type PTYExecutor struct {
	cmd      *exec.Cmd
	pty      io.ReadWriteCloser
	output   io.Reader
	fallback bool

	// Overrides for platforms where the process is not owned by cmd.
	wait func() error
	kill func() error
}

// NewPTYExecutor creates an executor for the given command.
func NewPTYExecutor(command string, args []string) (*PTYExecutor, error) {
	return &PTYExecutor{cmd: exec.Command(command, args...)}, nil
}

// Start begins execution. Platform specifics live in pty_unix.go and
// pty_windows.go.
func (p *PTYExecutor) Start() error {
	return p.startPlatform()
}

// Wait waits for the command to complete.
func (p *PTYExecutor) Wait() error {
	if p.wait != nil {
		return p.wait()
	}
	return p.cmd.Wait()
}

// Output returns a reader for the combined command output.
func (p *PTYExecutor) Output() io.Reader {
	return p.output
}

// Kill terminates the command.
func (p *PTYExecutor) Kill() error {
	if p.kill != nil {
		return p.kill()
	}
	if p.cmd.Process != nil {
		return p.cmd.Process.Kill()
	}
	return nil
}

// IsFallback reports whether the command runs without a PTY.
func (p *PTYExecutor) IsFallback() bool {
	return p.fallback
}

// Close closes the PTY.
func (p *PTYExecutor) Close() error {
	if p.pty != nil {
		return p.pty.Close()
	}
	return nil
}

// Attach relays the current terminal to the running command until it exits.
// When stdin is a real terminal it is switched to raw mode so key presses
// reach the child unmodified.
func (p *PTYExecutor) Attach() error {
	if p.fallback || p.pty == nil {
		// Pipes already carry stdio; just drain the output.
		go func() { _, _ = io.Copy(os.Stdout, p.output) }()
		return p.Wait()
	}

	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		oldState, err := term.MakeRaw(stdinFd)
		if err == nil {
			defer term.Restore(stdinFd, oldState)
		}
	}

	go func() { _, _ = io.Copy(p.pty, os.Stdin) }()
	go func() { _, _ = io.Copy(os.Stdout, p.pty) }()
	return p.Wait()
}
