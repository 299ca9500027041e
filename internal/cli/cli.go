// Package cli provides command-line interface functionality for cssbuild.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AndreyAkinshin/cssbuild/internal/errors"
	"github.com/AndreyAkinshin/cssbuild/internal/metrics"
	"github.com/AndreyAkinshin/cssbuild/internal/output"
	"github.com/AndreyAkinshin/cssbuild/internal/project"
	"github.com/AndreyAkinshin/cssbuild/internal/sass"
	"github.com/AndreyAkinshin/cssbuild/internal/task"
	"github.com/AndreyAkinshin/cssbuild/internal/telemetry"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
// With no command the "default" alias runs.
func Run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help", "help":
			printUsage()
			return 0
		case "--version", "version":
			fmt.Printf("cssbuild %s\n", Version)
			return 0
		}
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.Error("%v", err)
		return errors.ExitConfigError
	}
	telemetry.SetupLogger(opts.Verbose)

	if len(remaining) == 0 {
		return cmdRun(nil, opts)
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	// Route to command handler. Built-in commands take precedence over
	// aliases of the same name.
	switch cmd {
	case "tasks":
		return cmdTasks(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	case "completion":
		return cmdCompletion(cmdArgs)
	default:
		return cmdRun(remaining, opts)
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet       bool
	Verbose     bool
	DryRun      bool
	ConfigPath  string
	MetricsFile string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because flags can
// appear anywhere in the argument list, not just before the task names.
// Global flags are recognized everywhere; any other flag after the command
// word is left in remaining for the command to parse.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--dry-run":
			opts.DryRun = true
			i++
		case arg == "--config" || arg == "--metrics-file":
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return nil, nil, fmt.Errorf("%s requires a value", arg)
			}
			setValueFlag(opts, arg, args[i+1])
			i += 2
		case strings.HasPrefix(arg, "--config=") || strings.HasPrefix(arg, "--metrics-file="):
			name, value, _ := strings.Cut(arg, "=")
			if value == "" {
				return nil, nil, fmt.Errorf("%s requires a value", name)
			}
			setValueFlag(opts, name, value)
			i++
		case arg == "-h" || arg == "--help":
			remaining = append(remaining, arg)
			i++
		case strings.HasPrefix(arg, "-") && len(remaining) == 0:
			return nil, nil, unknownFlag(arg)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyVerbosityToOutput(opts)

	return opts, remaining, nil
}

func unknownFlag(arg string) error {
	return fmt.Errorf("unknown flag: %s\n  run 'cssbuild help' for usage", arg)
}

func setValueFlag(opts *GlobalOptions, name, value string) {
	switch name {
	case "--config":
		opts.ConfigPath = value
	case "--metrics-file":
		opts.MetricsFile = value
	}
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	return nil
}

// metricsFile returns the textfile path from the flag or CSSBUILD_METRICS_FILE.
func metricsFile(opts *GlobalOptions) string {
	if opts.MetricsFile != "" {
		return opts.MetricsFile
	}
	return os.Getenv(metrics.EnvMetricsFile)
}

func printUsage() {
	w := output.New()

	w.HelpTitle("cssbuild - compile Sass and minify CSS")

	w.HelpSection("Usage:")
	w.HelpLine("cssbuild [flags]                     Run the \"default\" alias")
	w.HelpLine("cssbuild [flags] <task>[:<target>]...  Run tasks, targets or aliases in order")

	// Context-aware section when a project loads
	if proj, err := project.Load(""); err == nil {
		if registry, err := task.Register(proj.Config, proj.Root); err == nil {
			printProjectTasks(w, registry)
		}
	}

	w.HelpSection("Commands:")
	w.HelpEntry("tasks", "List tasks, targets and aliases", widthCommand)
	w.HelpEntry("config validate", "Validate the configuration", widthCommand)
	w.HelpEntry("completion <shell>", "Generate shell completion (bash, zsh, fish)", widthCommand)
	w.HelpEntry("version", "Show version information", widthCommand)
	w.HelpEntry("help", "Show this help", widthCommand)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("cssbuild", "Compile scss/all.scss and minify to css/all.min.css")
	w.HelpExample("cssbuild compile", "Run every compile target")
	w.HelpExample("cssbuild minify:build", "Run one minify target")
	w.HelpExample("cssbuild --dry-run", "Show what would run")
	w.Println("")
}

func printProjectTasks(w *output.Writer, registry *task.Registry) {
	var names []string
	for _, s := range registry.Steps() {
		names = append(names, s.Name())
	}
	names = append(names, registry.AliasNames()...)

	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}

	w.HelpSection("Tasks:")
	for _, s := range registry.Steps() {
		w.HelpEntry(s.Name(), strings.Join(s.Describe(), "; "), width)
	}
	for _, name := range registry.AliasNames() {
		members, _ := registry.Alias(name)
		w.HelpEntry(name, "runs "+strings.Join(members, ", "), width)
	}
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpEntry("-q, --quiet", "Minimal output (errors only)", widthFlagWithValue)
	w.HelpEntry("-v, --verbose", "Debug logging", widthFlagWithValue)
	w.HelpEntry("--config <path>", "Use this config file instead of discovery", widthFlagWithValue)
	w.HelpEntry("--dry-run", "Print the plan without running it", widthFlagWithValue)
	w.HelpEntry("--metrics-file <path>", "Write Prometheus metrics after the run", widthFlagWithValue)
	w.HelpEntry("-h, --help", "Show this help", widthFlagWithValue)
	w.HelpEntry("--version", "Show version", widthFlagWithValue)

	w.HelpSection("Environment:")
	w.HelpEntry(sass.DartSassEnvVar, "Path to the Dart Sass executable", widthEnvVar)
	w.HelpEntry(metrics.EnvMetricsFile, "Default for --metrics-file", widthEnvVar)
	w.HelpEntry(telemetry.EnvLogLevel, "DEBUG, INFO, WARN (default), ERROR", widthEnvVar)
	w.HelpEntry(telemetry.EnvLogFormat, "text (default) or json", widthEnvVar)
}
