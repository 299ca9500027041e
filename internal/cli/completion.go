package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
)

const programName = "cssbuild"

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.Error("completion: --alias requires a value (--alias=<name>)")
			return 2
		case strings.HasPrefix(arg, "-"):
			out.Error("completion: unknown flag: %s", arg)
			return 2
		default:
			if shell != "" {
				out.Error("completion: unexpected argument: %s", arg)
				return 2
			}
			shell = arg
		}
	}

	if shell == "" {
		out.Error("completion: shell required (bash, zsh, fish)")
		return 2
	}

	cmdName := programName
	if alias != "" {
		cmdName = alias
	}

	script, ok := generateCompletion(shell, cmdName)
	if !ok {
		out.Error("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return 2
	}
	out.Print("%s", script)
	return 0
}

func generateCompletion(shell, cmdName string) (string, bool) {
	switch shell {
	case "bash":
		return generateBashCompletion(cmdName), true
	case "zsh":
		return generateZshCompletion(cmdName), true
	case "fish":
		return generateFishCompletion(cmdName), true
	}
	return "", false
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := out

	w.HelpTitle("cssbuild completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpLine("cssbuild completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpEntry("<shell>", "Shell type: bash, zsh, or fish", 14)

	w.HelpSection("Options:")
	w.HelpEntry("--alias=<name>", "Generate completion for command alias", 14)
	w.HelpEntry("-h, --help", "Show this help", 14)

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(cssbuild completion bash)\"")
	w.Println("  Zsh:   eval \"$(cssbuild completion zsh)\"")
	w.Println("  Fish:  cssbuild completion fish | source")
	w.Println("")
}

type commandInfo struct {
	name        string
	description string
}

// builtinCommands returns the built-in CLI commands.
func builtinCommands() []commandInfo {
	return []commandInfo{
		{"tasks", "List tasks, targets and aliases"},
		{"config", "Configuration utilities"},
		{"completion", "Generate shell completion"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
}

// pipelineNames returns the names every project accepts, used when the
// dynamic listing is unavailable.
func pipelineNames() []string {
	return []string{config.TaskCompile, config.TaskMinify, config.DefaultAlias}
}

// globalFlags returns the global CLI flags.
func globalFlags() []string {
	return []string{
		"--quiet",
		"--verbose",
		"--dry-run",
		"--config",
		"--metrics-file",
		"--help",
		"--version",
	}
}

func commandNames() []string {
	var names []string
	for _, c := range builtinCommands() {
		names = append(names, c.name)
	}
	return names
}

// aliasNote marks scripts generated for a shell alias of cssbuild.
func aliasNote(cmdName string) string {
	if cmdName == programName {
		return ""
	}
	return fmt.Sprintf("# Generated for the alias %q (alias %s=%q)\n", cmdName, cmdName, programName)
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"
	words := append(commandNames(), pipelineNames()...)

	return fmt.Sprintf(`# cssbuild bash completion
# Add to ~/.bashrc: eval "$(cssbuild completion bash)"
%s
%s() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    local commands="%s"
    local flags="%s"

    case "${prev}" in
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --config|--metrics-file)
            COMPREPLY=($(compgen -f -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    local names
    names=$(%s tasks --names 2>/dev/null)
    COMPREPLY=($(compgen -W "${names} ${commands}" -- "${cur}"))
}

complete -F %s %s
`, aliasNote(cmdName), funcName, strings.Join(words, " "), strings.Join(globalFlags(), " "), programName, funcName, cmdName)
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var commands strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, c.description)
	}

	return fmt.Sprintf(`#compdef %s
# cssbuild zsh completion
# Add to ~/.zshrc: eval "$(cssbuild completion zsh)"
%s
%s() {
    local -a commands names flags

    commands=(
%s    )

    flags=(
        '(-q --quiet)'{-q,--quiet}'[Minimal output]'
        '(-v --verbose)'{-v,--verbose}'[Debug logging]'
        '--dry-run[Print the plan without running it]'
        '--config=[Config file]:file:_files'
        '--metrics-file=[Prometheus textfile]:file:_files'
        '--help[Show help]'
        '--version[Show version]'
    )

    names=(${(f)"$(%s tasks --names 2>/dev/null)"})
    names=(${names//:/\\:})

    case "${words[2]}" in
        config)
            _values 'config subcommand' validate
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        *)
            if (( CURRENT == 2 )); then
                _describe -t commands 'command' commands
            fi
            if [[ ${#names[@]} -gt 0 && -n "${names[1]}" ]]; then
                _describe -t tasks 'task' names
            fi
            _arguments -s $flags[@]
            ;;
    esac
}

compdef %s %s
`, cmdName, aliasNote(cmdName), funcName, commands.String(), programName, funcName, cmdName)
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	sb.WriteString("# cssbuild fish completion\n")
	sb.WriteString("# Add to config: cssbuild completion fish | source\n")
	sb.WriteString(aliasNote(cmdName))
	fmt.Fprintf(&sb, "\ncomplete -c %s -f\n", cmdName)

	sb.WriteString("\n# Commands\n")
	for _, c := range builtinCommands() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.name, c.description)
	}

	sb.WriteString("\n# Global flags\n")
	fmt.Fprintf(&sb, "complete -c %s -s q -l quiet -d 'Minimal output'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -s v -l verbose -d 'Debug logging'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l dry-run -d 'Print the plan without running it'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l config -r -F -d 'Config file'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l metrics-file -r -F -d 'Prometheus textfile'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l help -d 'Show help'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l version -d 'Show version'\n", cmdName)

	sb.WriteString("\n# Subcommands\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from config' -a 'validate' -d 'Validate configuration'\n", cmdName)
	for _, shell := range []string{"bash", "zsh", "fish"} {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -a '%s' -d 'Generate %s completion'\n", cmdName, shell, shell)
	}

	sb.WriteString("\n# Tasks, targets and aliases\n")
	fmt.Fprintf(&sb, "complete -c %s -n 'not __fish_seen_subcommand_from config completion' -a '(%s tasks --names 2>/dev/null)' -d 'Task'\n", cmdName, programName)

	return sb.String()
}
