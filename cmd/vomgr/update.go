package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vexyart/vexy-overnight/internal/buildinfo"
	"github.com/vexyart/vexy-overnight/internal/updater"
)

func usageUpdate() {
	fmt.Fprint(os.Stderr, `Usage: vomgr update [options]

Checks and updates the installed CLI tools (npm and brew packages from
the tool catalog) and vomgr itself.

Options:
  --check          Show current and available versions, change nothing
  --cli            Update the CLI tools
  --self           Check for a newer vomgr release
  --all            Same as --cli --self
  --dry-run        Log what would run without running it
  --skip <tools>   Comma separated tools to leave alone
  -h, --help       Show this help
`)
}

func cmdUpdate(args []string) int {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageUpdate
	check := fs.Bool("check", false, "show versions only")
	cli := fs.Bool("cli", false, "update CLI tools")
	self := fs.Bool("self", false, "check for a newer vomgr")
	all := fs.Bool("all", false, "update everything")
	dryRun := fs.Bool("dry-run", false, "log without executing")
	skip := fs.String("skip", "", "comma separated tools to skip")
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageUpdate()
		return 0
	}
	if *all {
		*cli = true
		*self = true
	}
	if !*check && !*cli && !*self {
		*check = true
	}

	m := updater.NewManager("")

	if *check {
		versions := m.CheckVersions()
		tools := make([]string, 0, len(versions))
		for tool := range versions {
			tools = append(tools, tool)
		}
		sort.Strings(tools)
		for _, tool := range tools {
			v := versions[tool]
			info("%s: %s -> %s\n", bold(tool), v.Current, v.Available)
		}
	}

	if *cli {
		var skipList []string
		for _, tool := range strings.Split(*skip, ",") {
			if tool = strings.TrimSpace(tool); tool != "" {
				skipList = append(skipList, tool)
			}
		}
		m.UpdateCLITools(*dryRun, skipList)
		if *dryRun {
			info("Dry run complete, see %s\n", m.LogPath())
		} else {
			success("CLI tools updated\n")
		}
	}

	if *self {
		res := updater.SelfCheck(buildinfo.Version, updater.SelfCheckOptions{NoCache: true})
		switch {
		case res.Error != "":
			warn("Release check failed: %s\n", res.Error)
		case res.CurrentUnknown:
			info("Current version unknown; latest release is %s\n", res.Latest)
		case res.UpdateAvailable:
			warn("Update available: %s -> %s\n", res.Current, res.Latest)
			info("Run: npm install -g @vexyart/vexy-overnight\n")
		default:
			success("vomgr %s is up to date\n", res.Current)
		}
	}
	return 0
}
