package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/cssbuild/internal/config"
	"github.com/AndreyAkinshin/cssbuild/internal/errors"
	"github.com/AndreyAkinshin/cssbuild/internal/metrics"
	"github.com/AndreyAkinshin/cssbuild/internal/output"
	"github.com/AndreyAkinshin/cssbuild/internal/project"
	"github.com/AndreyAkinshin/cssbuild/internal/runner"
	"github.com/AndreyAkinshin/cssbuild/internal/sass"
	"github.com/AndreyAkinshin/cssbuild/internal/task"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Help text alignment widths for consistent formatting.
const (
	widthCommand       = 18 // Width for commands like "completion <shell>"
	widthFlagWithValue = 21 // Width for flags like "--metrics-file <path>"
	widthFlagShort     = 10 // Width for short flags like "-h, --help"
	widthEnvVar        = 21 // Width for environment variables
)

// applyVerbosityToOutput configures the output writer based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and the exit code
// of the failure (2 for configuration errors).
func loadProject(opts *GlobalOptions) (*project.Project, int) {
	proj, err := project.Load(opts.ConfigPath)
	if err != nil {
		out.Error("%v", err)
		return nil, errors.GetExitCode(err)
	}
	for _, w := range proj.Warnings {
		out.Warning("%s", w)
	}
	return proj, 0
}

// loadRegistry loads the project and registers its tasks.
func loadRegistry(opts *GlobalOptions) (*project.Project, *task.Registry, int) {
	proj, code := loadProject(opts)
	if proj == nil {
		return nil, nil, code
	}
	registry, err := task.Register(proj.Config, proj.Root)
	if err != nil {
		out.Error("%v", err)
		return nil, nil, errors.GetExitCode(err)
	}
	return proj, registry, 0
}

// cmdRun runs tasks, targets or aliases in the order given, or the default
// alias when names is empty.
func cmdRun(names []string, opts *GlobalOptions) int {
	if wantsHelp(names) {
		printUsage()
		return 0
	}
	for _, name := range names {
		if strings.HasPrefix(name, "-") {
			out.Error("%v", unknownFlag(name))
			return errors.ExitConfigError
		}
	}

	proj, registry, code := loadRegistry(opts)
	if registry == nil {
		return code
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.New()
	r := runner.New(registry, runner.WithOutput(out), runner.WithMetrics(recorder))
	result, err := r.Run(ctx, names, runner.RunOptions{DryRun: opts.DryRun})

	if path := metricsFile(opts); path != "" && !opts.DryRun && result != nil {
		if werr := recorder.WriteTextfile(path); werr != nil {
			out.Warning("failed to write metrics to %s: %v", path, werr)
		}
	}

	if err == nil {
		return 0
	}
	switch {
	case result == nil:
		// Resolution failed before anything ran.
		out.Error("%v", err)
	case ctx.Err() != nil:
		out.Error("interrupted")
	default:
		printFailureHint(proj, err)
	}
	return errors.GetExitCode(err)
}

// printFailureHint suggests a fix for common first-run failures.
func printFailureHint(proj *project.Project, err error) {
	switch {
	case errors.IsKind(err, errors.KindEnvironment):
		out.Hint("Install Dart Sass (https://sass-lang.com/install) or point %s at the sass executable.", sass.DartSassEnvVar)
	case errors.IsKind(err, errors.KindCompile) && stderrors.Is(err, os.ErrNotExist) && proj.Builtin():
		entries, derr := project.DiscoverEntries(proj.Root)
		if derr != nil || len(entries) == 0 {
			return
		}
		out.Hint("No %s here; found Sass entry files: %s", config.DefaultSource, strings.Join(entries, ", "))
		out.Hint("Create cssbuild.json with a compile target to build them.")
	}
}

// cmdTasks lists tasks, targets and aliases.
func cmdTasks(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printTasksUsage()
		return 0
	}
	namesOnly := false
	for _, arg := range args {
		if arg != "--names" {
			out.Error("tasks: unexpected argument %q", arg)
			return errors.ExitConfigError
		}
		namesOnly = true
	}

	_, registry, code := loadRegistry(opts)
	if registry == nil {
		return code
	}

	if namesOnly {
		for _, name := range runnableNames(registry) {
			out.Println("%s", name)
		}
		return 0
	}

	title := cases.Title(language.English)
	for _, t := range registry.Tasks() {
		var steps []task.Step
		for _, s := range registry.Steps() {
			if s.Task() == t {
				steps = append(steps, s)
			}
		}
		out.Heading(t, fmt.Sprintf("%s (%s)", title.String(t), pluralize(len(steps), "target")))
		for _, s := range steps {
			out.Detail(s.Target(), strings.Join(s.Describe(), "; "))
		}
	}
	for _, name := range registry.AliasNames() {
		members, _ := registry.Alias(name)
		out.Heading(name, "Alias")
		out.Detail("runs", strings.Join(members, ", "))
	}
	return 0
}

// runnableNames lists every name accepted on the command line.
func runnableNames(registry *task.Registry) []string {
	var names []string
	names = append(names, registry.Tasks()...)
	for _, s := range registry.Steps() {
		names = append(names, s.Name())
	}
	return append(names, registry.AliasNames()...)
}

// cmdConfig handles configuration utilities.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.Error("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(opts)
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.Error("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	proj, registry, code := loadRegistry(opts)
	if registry == nil {
		return code
	}

	problems := proj.CheckSources()
	for _, p := range problems {
		out.Warning("%s", p)
	}

	var counts []string
	for _, t := range registry.Tasks() {
		n := 0
		for _, s := range registry.Steps() {
			if s.Task() == t {
				n++
			}
		}
		counts = append(counts, fmt.Sprintf("%s (%s)", t, pluralize(n, "target")))
	}

	out.Valid("Configuration is valid.")
	out.Detail("Config", proj.DisplayConfigPath())
	out.Detail("Tasks", strings.Join(counts, ", "))
	out.Detail("Aliases", strings.Join(registry.AliasNames(), ", "))
	if n := len(proj.Warnings) + len(problems); n > 0 {
		out.Detail("Warnings", fmt.Sprintf("%d", n))
	}
	return 0
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := output.New()

	w.HelpTitle("cssbuild config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpLine("cssbuild config <subcommand>")

	w.HelpSection("Subcommands:")
	w.HelpEntry("validate", "Validate the configuration and check compile sources", widthFlagShort)

	w.HelpSection("Options:")
	w.HelpEntry("-h, --help", "Show this help", widthFlagShort)

	w.HelpSection("Examples:")
	w.HelpExample("cssbuild config validate", "Validate the discovered configuration")
	w.HelpExample("cssbuild --config site.yml config validate", "Validate a specific file")
	w.Println("")
}

// printTasksUsage prints the help text for the tasks command.
func printTasksUsage() {
	w := output.New()

	w.HelpTitle("cssbuild tasks - list tasks, targets and aliases")

	w.HelpSection("Usage:")
	w.HelpLine("cssbuild tasks [--names]")

	w.HelpSection("Description:")
	w.Println("  Lists every compile and minify target with its file mappings,")
	w.Println("  followed by the aliases and the tasks they run.")

	w.HelpSection("Options:")
	w.HelpEntry("--names", "Print runnable names only, one per line", widthFlagShort)
	w.HelpEntry("-h, --help", "Show this help", widthFlagShort)

	w.HelpSection("Examples:")
	w.HelpExample("cssbuild tasks", "List everything")
	w.HelpExample("cssbuild tasks --names", "Names for scripts and shell completion")
	w.Println("")
}
