// Package launcher resolves and starts the external CLI tools. Interactive
// runs go through a pseudo-terminal so the tools keep their TTY behavior;
// continuation hand-offs spawn a fresh terminal window per platform.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
)

// Install hints shown when a CLI binary cannot be found.
var installHints = map[string]string{
	"claude": "npm install -g @anthropic-ai/claude-code",
	"codex":  "brew install codex",
	"gemini": "npm install -g @google/gemini-cli",
}

// Manager resolves CLI binaries once so repeated launches are cheap.
type Manager struct {
	ClaudeCmd string
	CodexCmd  string
	GeminiCmd string
}

// NewManager looks up all three tool binaries.
func NewManager() *Manager {
	return &Manager{
		ClaudeCmd: FindCommand("claude"),
		CodexCmd:  FindCommand("codex"),
		GeminiCmd: FindCommand("gemini"),
	}
}

// FindCommand locates cmd in PATH or well-known install directories.
// Returns "" when the command cannot be found.
func FindCommand(cmd string) string {
	if path, err := exec.LookPath(cmd); err == nil {
		return path
	}
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join("/usr/local/bin", cmd),
		filepath.Join(home, ".local", "bin", cmd),
		filepath.Join("/opt/homebrew/bin", cmd),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// ClaudeOptions configure a Claude launch.
type ClaudeOptions struct {
	Cwd    string
	Model  string
	Prompt string
}

// ClaudeCommand builds the claude argument list. The model defaults to
// claude-sonnet-4.
func (m *Manager) ClaudeCommand(opts ClaudeOptions) ([]string, error) {
	if m.ClaudeCmd == "" {
		return nil, missingTool("claude")
	}
	cmd := []string{m.ClaudeCmd, "--dangerously-skip-permissions"}
	model := opts.Model
	if model == "" {
		model = "claude-sonnet-4"
	}
	cmd = append(cmd, "--model", model)
	if opts.Prompt != "" {
		cmd = append(cmd, "--prompt", opts.Prompt)
	}
	return cmd, nil
}

// LaunchClaude runs the Claude CLI interactively.
func (m *Manager) LaunchClaude(opts ClaudeOptions) error {
	cmd, err := m.ClaudeCommand(opts)
	if err != nil {
		return err
	}
	return m.runInteractive(cmd, opts.Cwd)
}

// CodexOptions configure a Codex launch.
type CodexOptions struct {
	Cwd      string
	Profile  string
	ExecMode bool
	Prompt   string
}

// CodexCommand builds the codex argument list. The profile defaults to gpt5
// and the sandbox flags are always included.
func (m *Manager) CodexCommand(opts CodexOptions) ([]string, error) {
	if m.CodexCmd == "" {
		return nil, missingTool("codex")
	}
	cmd := []string{m.CodexCmd}
	if opts.Cwd != "" {
		cmd = append(cmd, "--cd="+opts.Cwd)
	}
	profile := opts.Profile
	if profile == "" {
		profile = "gpt5"
	}
	cmd = append(cmd, "-m", profile)
	if opts.ExecMode {
		cmd = append(cmd, "-p", "-e")
	}
	cmd = append(cmd,
		"--dangerously-bypass-approvals-and-sandbox",
		"--sandbox", "danger-full-access")
	if opts.Prompt != "" {
		cmd = append(cmd, opts.Prompt)
	}
	return cmd, nil
}

// LaunchCodex runs the Codex CLI interactively.
func (m *Manager) LaunchCodex(opts CodexOptions) error {
	cmd, err := m.CodexCommand(opts)
	if err != nil {
		return err
	}
	return m.runInteractive(cmd, opts.Cwd)
}

// GeminiOptions configure a Gemini launch.
type GeminiOptions struct {
	Cwd    string
	Prompt string
}

// GeminiCommand builds the gemini argument list.
func (m *Manager) GeminiCommand(opts GeminiOptions) ([]string, error) {
	if m.GeminiCmd == "" {
		return nil, missingTool("gemini")
	}
	cmd := []string{m.GeminiCmd, "-c", "-y"}
	if opts.Prompt != "" {
		cmd = append(cmd, opts.Prompt)
	}
	return cmd, nil
}

// LaunchGemini runs the Gemini CLI interactively.
func (m *Manager) LaunchGemini(opts GeminiOptions) error {
	cmd, err := m.GeminiCommand(opts)
	if err != nil {
		return err
	}
	return m.runInteractive(cmd, opts.Cwd)
}

// runInteractive executes command attached to the current terminal.
func (m *Manager) runInteractive(command []string, cwd string) error {
	log.Info("launching", "command", command[0], "args", command[1:])
	executor, err := NewPTYExecutor(command[0], command[1:])
	if err != nil {
		return voerrors.NewLaunchErrorWithCause(fmt.Sprintf("failed to launch %s", command[0]), err)
	}
	if cwd != "" {
		executor.cmd.Dir = cwd
	}
	defer executor.Close()
	if err := executor.Start(); err != nil {
		return voerrors.NewLaunchErrorWithCause(fmt.Sprintf("failed to launch %s", command[0]), err)
	}
	return executor.Attach()
}

// Start launches command in cwd with extra environment variables, attached
// to the current stdio. The caller waits on the returned command.
func Start(command []string, cwd string, env map[string]string) (*exec.Cmd, error) {
	if len(command) == 0 {
		return nil, voerrors.NewLaunchError("no command configured")
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = cwd
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = mergedEnv(env)
	if err := cmd.Start(); err != nil {
		return nil, voerrors.NewLaunchErrorWithCause(
			fmt.Sprintf("failed to launch %s", command[0]), err)
	}
	return cmd, nil
}

// StartDetached launches command in its own process group so it survives the
// short-lived hook process that spawned it.
func StartDetached(command []string, cwd string, env map[string]string) (*os.Process, error) {
	if len(command) == 0 {
		return nil, voerrors.NewLaunchError("no command configured")
	}
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = cwd
	cmd.Env = mergedEnv(env)
	cmd.SysProcAttr = detachedProcAttr()
	if err := cmd.Start(); err != nil {
		return nil, voerrors.NewLaunchErrorWithCause(
			fmt.Sprintf("failed to launch %s", command[0]), err)
	}
	if err := cmd.Process.Release(); err != nil {
		log.Debug("process release failed", "err", err)
	}
	return cmd.Process, nil
}

func mergedEnv(extra map[string]string) []string {
	env := os.Environ()
	for key, value := range extra {
		env = append(env, key+"="+value)
	}
	return env
}

func missingTool(tool string) error {
	hint := installHints[tool]
	return voerrors.NewLaunchError(
		fmt.Sprintf("%s CLI not found. Install with: %s", tool, hint))
}
