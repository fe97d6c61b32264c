package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vexyart/vexy-overnight/internal/config"
	voerrors "github.com/vexyart/vexy-overnight/internal/errors"
	"github.com/vexyart/vexy-overnight/internal/hooks"
	"github.com/vexyart/vexy-overnight/internal/settings"
)

func usageInstall() {
	fmt.Fprint(os.Stderr, `Usage: vomgr install [options]

Installs continuation hook stubs for claude and codex, enables them in
the tool configs, and writes default settings.

Options:
  --backup-legacy  Back up claude4ever/codex4ever configs before installing
  --migrate       Rewrite legacy hook script references to vomgr stubs
  -h, --help      Show this help
`)
}

func cmdInstall(args []string) int {
	fs := flag.NewFlagSet("install", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageInstall
	backupLegacy := fs.Bool("backup-legacy", false, "back up legacy configs first")
	migrate := fs.Bool("migrate", false, "migrate settings from legacy tools")
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageInstall()
		return 0
	}

	cfg := config.NewManager("")
	if *backupLegacy {
		cfg.BackupLegacyConfigs()
		success("Legacy configurations backed up\n")
	}

	hm := hooks.NewManager("")
	if err := hm.InstallHooks(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	if err := cfg.EnableClaudeHook(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	if err := cfg.EnableCodexHook(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	success("Continuation hooks installed\n")

	if *migrate {
		if err := cfg.MigrateFromLegacy(); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
		success("Settings migrated from legacy tools\n")
	}

	if err := cfg.SetupConfigs(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	if _, err := settings.Load(""); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	success("Configuration files set up\n")

	info("%s\n", bold("Installation complete"))
	return 0
}

func usageUninstall() {
	fmt.Fprint(os.Stderr, `Usage: vomgr uninstall

Removes continuation hook stubs, disables the hook entries in the tool
configs, and restores default config files.

Options:
  -h, --help  Show this help
`)
}

func cmdUninstall(args []string) int {
	fs := flag.NewFlagSet("uninstall", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageUninstall
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageUninstall()
		return 0
	}

	cfg := config.NewManager("")
	hm := hooks.NewManager("")
	if err := cfg.DisableClaudeHook(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	if err := cfg.DisableCodexHook(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	if err := hm.UninstallHooks(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	success("Hooks removed\n")

	if err := cfg.RestoreDefaults(); err != nil {
		errorf("%v\n", err)
		return voerrors.GetExitCode(err)
	}
	success("Configurations restored to defaults\n")
	return 0
}

func cmdEnable(args []string) int {
	if len(args) < 1 {
		errorf("Usage: vomgr enable <claude|codex|gemini>\n")
		return 2
	}
	tool := args[0]
	if !validTool(tool) {
		return 2
	}

	cfg := config.NewManager("")
	switch tool {
	case "claude":
		if err := cfg.EnableClaudeHook(); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
	case "codex":
		if err := cfg.EnableCodexHook(); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
	case "gemini":
		warn("Gemini continuation not yet implemented\n")
		return 0
	}
	success("Continuation enabled for %s\n", tool)
	return 0
}

func cmdDisable(args []string) int {
	if len(args) < 1 {
		errorf("Usage: vomgr disable <claude|codex|gemini>\n")
		return 2
	}
	tool := args[0]
	if !validTool(tool) {
		return 2
	}

	cfg := config.NewManager("")
	switch tool {
	case "claude":
		if err := cfg.DisableClaudeHook(); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
	case "codex":
		if err := cfg.DisableCodexHook(); err != nil {
			errorf("%v\n", err)
			return voerrors.GetExitCode(err)
		}
	case "gemini":
		warn("Gemini continuation not yet implemented\n")
		return 0
	}
	success("Continuation disabled for %s\n", tool)
	return 0
}
