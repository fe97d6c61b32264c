package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vexyart/vexy-overnight/internal/rules"
)

func usageRules() {
	fmt.Fprint(os.Stderr, `Usage: vomgr rules [options]

Keeps shared instruction files (CLAUDE.md, AGENTS.md, GEMINI.md, ...)
linked to a single source of truth.

Options:
  --sync             Relink all instruction files to the newest copy
  --append <text>    Append a line to each canonical instruction file
  --search <text>    Search instruction files for text
  --replace <old> <new>  Replace text across instruction files
  --global           Operate on the per-user directories instead of cwd
  -h, --help         Show this help
`)
}

func cmdRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageRules
	doSync := fs.Bool("sync", false, "relink instruction files")
	appendText := fs.String("append", "", "text to append")
	searchText := fs.String("search", "", "text to search for")
	doReplace := fs.Bool("replace", false, "replace text (takes two trailing args)")
	global := fs.Bool("global", false, "operate on per-user directories")
	showHelp := fs.Bool("help", false, "show help")
	showHelpShort := fs.Bool("h", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showHelp || *showHelpShort {
		usageRules()
		return 0
	}

	m := rules.NewManager(*global, "")
	acted := false

	if *doSync {
		acted = true
		m.Sync()
		success("Instruction files synced\n")
	}

	if *appendText != "" {
		acted = true
		m.Append(*appendText)
		success("Appended to instruction files\n")
	}

	if *searchText != "" {
		acted = true
		results := m.Search(*searchText)
		if len(results) == 0 {
			info("No matches found\n")
		} else {
			for _, filename := range rules.InstructionFiles {
				matches := results[filename]
				if len(matches) == 0 {
					continue
				}
				info("%s: %d match(es)\n", bold(filename), len(matches))
				for _, match := range matches {
					info("  %s\n", match)
				}
			}
		}
	}

	if *doReplace {
		acted = true
		rest := fs.Args()
		if len(rest) < 2 {
			errorf("Usage: vomgr rules --replace <old> <new>\n")
			return 2
		}
		m.Replace(rest[0], rest[1])
		success("Replacement applied\n")
	}

	if !acted {
		warn("No rules action performed\n")
		usageRules()
		return 2
	}
	return 0
}
