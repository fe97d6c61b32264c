package main

import (
	"fmt"
	"os"
)

func usageCompletion() {
	fmt.Fprint(os.Stderr, `Generate shell completion script

Usage:
  vomgr completion <shell>

Shells:
  bash    Bash completion
  zsh     Zsh completion
  fish    Fish completion

Examples:
  vomgr completion bash > /etc/bash_completion.d/vomgr
  vomgr completion zsh > "${fpath[1]}/_vomgr"
`)
}

func cmdCompletion(args []string) int {
	if len(args) < 1 {
		usageCompletion()
		return 2
	}

	shell := args[0]
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		errorf("Unsupported shell: %s\n", shell)
		fmt.Fprintln(os.Stderr, "Supported: bash, zsh, fish")
		return 2
	}
	return 0
}

const bashCompletion = `# vomgr bash completion
_vomgr() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    commands="install uninstall enable disable run continuation prompt notify terminal rules update status hook relaunch bump completion version help"
    tools="claude codex gemini"

    case "${prev}" in
        vomgr)
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
            return 0
            ;;
        install)
            COMPREPLY=( $(compgen -W "--backup-legacy --migrate --help" -- ${cur}) )
            return 0
            ;;
        enable|disable|run|hook|relaunch)
            COMPREPLY=( $(compgen -W "${tools}" -- ${cur}) )
            return 0
            ;;
        continuation)
            COMPREPLY=( $(compgen -W "set disable status" -- ${cur}) )
            return 0
            ;;
        prompt)
            COMPREPLY=( $(compgen -W "set show" -- ${cur}) )
            return 0
            ;;
        notify)
            COMPREPLY=( $(compgen -W "set sound show" -- ${cur}) )
            return 0
            ;;
        terminal)
            COMPREPLY=( $(compgen -W "set show" -- ${cur}) )
            return 0
            ;;
        rules)
            COMPREPLY=( $(compgen -W "--sync --append --search --replace --global --help" -- ${cur}) )
            return 0
            ;;
        update)
            COMPREPLY=( $(compgen -W "--check --cli --self --all --dry-run --skip --help" -- ${cur}) )
            return 0
            ;;
        status)
            COMPREPLY=( $(compgen -W "--events --help" -- ${cur}) )
            return 0
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            return 0
            ;;
        help)
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
            return 0
            ;;
    esac
}
complete -F _vomgr vomgr
`

const zshCompletion = `#compdef vomgr

_vomgr() {
    local -a commands
    commands=(
        'install:Install continuation hooks'
        'uninstall:Remove hooks and restore defaults'
        'enable:Enable the continuation hook for a tool'
        'disable:Disable the continuation hook for a tool'
        'run:Launch a tool with defaults'
        'continuation:Manage continuation routing'
        'prompt:Manage prompt templates'
        'notify:Manage notifications'
        'terminal:Manage terminal spawn commands'
        'rules:Sync and edit instruction files'
        'update:Check and update the CLI toolchain'
        'status:Show install state'
        'bump:Tag and push the next patch version'
        'completion:Generate shell completion'
        'version:Show version'
        'help:Show help'
    )

    local -a tools
    tools=(claude codex gemini)

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[2] in
                enable|disable|run|hook|relaunch)
                    _describe 'tool' tools
                    ;;
                continuation)
                    _arguments '1:subcommand:(set disable status)'
                    ;;
                prompt|terminal)
                    _arguments '1:subcommand:(set show)'
                    ;;
                notify)
                    _arguments '1:subcommand:(set sound show)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
                help)
                    _describe 'command' commands
                    ;;
            esac
            ;;
    esac
}

_vomgr "$@"
`

const fishCompletion = `# vomgr fish completion
complete -c vomgr -e

# Commands
complete -c vomgr -n __fish_use_subcommand -a install -d 'Install continuation hooks'
complete -c vomgr -n __fish_use_subcommand -a uninstall -d 'Remove hooks and restore defaults'
complete -c vomgr -n __fish_use_subcommand -a enable -d 'Enable the continuation hook for a tool'
complete -c vomgr -n __fish_use_subcommand -a disable -d 'Disable the continuation hook for a tool'
complete -c vomgr -n __fish_use_subcommand -a run -d 'Launch a tool with defaults'
complete -c vomgr -n __fish_use_subcommand -a continuation -d 'Manage continuation routing'
complete -c vomgr -n __fish_use_subcommand -a prompt -d 'Manage prompt templates'
complete -c vomgr -n __fish_use_subcommand -a notify -d 'Manage notifications'
complete -c vomgr -n __fish_use_subcommand -a terminal -d 'Manage terminal spawn commands'
complete -c vomgr -n __fish_use_subcommand -a rules -d 'Sync and edit instruction files'
complete -c vomgr -n __fish_use_subcommand -a update -d 'Check and update the CLI toolchain'
complete -c vomgr -n __fish_use_subcommand -a status -d 'Show install state'
complete -c vomgr -n __fish_use_subcommand -a bump -d 'Tag and push the next patch version'
complete -c vomgr -n __fish_use_subcommand -a completion -d 'Generate shell completion'
complete -c vomgr -n __fish_use_subcommand -a version -d 'Show version'
complete -c vomgr -n __fish_use_subcommand -a help -d 'Show help'

# Tool arguments
complete -c vomgr -n '__fish_seen_subcommand_from enable disable run hook relaunch' -a 'claude codex gemini'

# install options
complete -c vomgr -n '__fish_seen_subcommand_from install' -l backup-legacy -d 'Back up legacy configs first'
complete -c vomgr -n '__fish_seen_subcommand_from install' -l migrate -d 'Migrate settings from legacy tools'

# update options
complete -c vomgr -n '__fish_seen_subcommand_from update' -l check -d 'Show versions only'
complete -c vomgr -n '__fish_seen_subcommand_from update' -l cli -d 'Update CLI tools'
complete -c vomgr -n '__fish_seen_subcommand_from update' -l self -d 'Check for a newer vomgr'
complete -c vomgr -n '__fish_seen_subcommand_from update' -l all -d 'Update everything'
complete -c vomgr -n '__fish_seen_subcommand_from update' -l dry-run -d 'Log without executing'

# completion shells
complete -c vomgr -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
