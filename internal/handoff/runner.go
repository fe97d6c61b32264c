package handoff

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/hooks"
	"github.com/vexyart/vexy-overnight/internal/launcher"
	"github.com/vexyart/vexy-overnight/internal/session"
	"github.com/vexyart/vexy-overnight/internal/settings"
)

// Runner executes the hook and relaunch halves of a continuation. The hook
// half runs inside the source tool's hook process: it persists a launch spec
// and spawns a terminal that runs `vomgr relaunch <tool>`. The relaunch half
// consumes the spec, starts the target CLI and rotates session state.
type Runner struct {
	Home   string
	Binary string
}

// NewRunner creates a runner. An empty binary resolves to the current
// executable so the spawned helper calls back into the same vomgr build.
func NewRunner(home, binary string) *Runner {
	if binary == "" {
		binary, _ = os.Executable()
	}
	if binary == "" {
		binary = "vomgr"
	}
	return &Runner{Home: home, Binary: binary}
}

// loadSettings returns persisted settings, falling back to defaults so a
// broken settings file never breaks a hook run.
func (r *Runner) loadSettings() *settings.Settings {
	s, err := settings.Load(r.Home)
	if err != nil {
		log.Debug("falling back to default settings", "err", err)
		return settings.Default()
	}
	return s
}

// HandleHook processes a hook invocation for the source tool, reading the
// payload from stdin.
func (r *Runner) HandleHook(tool string, stdin io.Reader) error {
	if !settings.IsTool(tool) {
		return voerrors.NewHookError(fmt.Sprintf("unknown tool %q", tool))
	}

	payload := ReadPayload(stdin)
	projectDir := ProjectDir(tool, payload, r.Home)
	s := r.loadSettings()
	specPath := SpecPath(hooks.NewManager(r.Home).HookPath(tool))

	if !Enabled(s, tool) {
		RemoveSpec(specPath)
		LogEvent(r.Home, EventHandoffSkipped, tool, "", projectDir, "continuation disabled")
		return nil
	}

	target := ResolveTarget(s, tool)
	prompt := BuildPrompt(s, tool, target, projectDir)
	command := TargetCommand(target, projectDir, prompt)
	env := EnvUpdates(s, tool, target, prompt, projectDir)

	if err := WriteSpec(specPath, &LaunchSpec{Command: command, Cwd: projectDir, Env: env}); err != nil {
		return voerrors.NewHookErrorWithCause("failed to write launch spec", err)
	}
	LogEvent(r.Home, EventHandoffStart, tool, target, projectDir, "")

	helperCommand := launcher.ShellCommand(projectDir, []string{r.Binary, "relaunch", tool})

	if os.Getenv(EnvForceDirect) == "1" {
		return r.Relaunch(tool)
	}

	spawned, err := launcher.SpawnTerminal(s.Terminals, target, helperCommand, projectDir, env)
	if err != nil {
		return voerrors.NewHookErrorWithCause("failed to spawn terminal", err)
	}
	if !spawned {
		return r.Relaunch(tool)
	}
	return nil
}

// Relaunch consumes the launch spec written by tool's hook: start the target
// CLI, rotate session state, emit the notification and wait for exit.
func (r *Runner) Relaunch(tool string) error {
	specPath := SpecPath(hooks.NewManager(r.Home).HookPath(tool))
	spec, err := ReadSpec(specPath)
	if err != nil {
		return voerrors.NewHookErrorWithCause("no pending continuation", err)
	}

	cmd, err := launcher.Start(spec.Command, spec.Cwd, spec.Env)
	if err != nil {
		return err
	}

	target := spec.Env[EnvTargetTool]
	if target == "" {
		target = "claude"
	}
	killOld := spec.Env[EnvKillOld] != "0"

	sessions := session.NewManager("")
	if r.Home != "" {
		sessions = session.NewManager(stateDir(r.Home))
	}
	if _, err := sessions.Rotate(target, int32(cmd.Process.Pid), spec.Cwd, killOld); err != nil {
		log.Debug("session rotation failed", "err", err)
	}

	LogEvent(r.Home, EventHandoffLaunch, spec.Env[EnvSourceTool], target, spec.Cwd, "")
	notify(spec.Env)
	return cmd.Wait()
}

func stateDir(home string) string {
	return filepath.Join(home, settings.DirName)
}

// notify prints the continuation notification with a terminal bell.
func notify(env map[string]string) {
	if env[EnvNotificationEnabled] != "1" {
		return
	}
	message := env[EnvNotificationMessage]
	if message == "" {
		return
	}
	fmt.Printf("[vomgr] %s\a\n", message)
}
