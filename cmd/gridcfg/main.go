// Package main is the entry point for the gridcfg command line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridcfg/gridcfg/internal/config"
	"github.com/gridcfg/gridcfg/internal/config/notify"
	"github.com/gridcfg/gridcfg/internal/config/option"
	"github.com/gridcfg/gridcfg/internal/config/value"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	envPrefix  string
	check      bool
	dump       bool
	watch      bool
}

func run() int {
	opts := parseFlags()

	cfg := config.New(
		config.WithConfigPath(opts.configPath),
		config.WithEnvPrefix(opts.envPrefix),
		config.WithWatcher(opts.watch),
	)
	defer cfg.Close()

	registerOptions(cfg)

	if opts.watch {
		cfg.Subscribe(func(change notify.Change) {
			switch change.Type {
			case notify.ChangeReload:
				fmt.Printf("reload from %s\n", change.Source)
			default:
				fmt.Printf("%s %s (%s)\n", change.Type, change.Option, change.Source)
			}
		})
	}

	if err := cfg.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	if opts.check {
		problems := cfg.Problems()
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "problem: %s\n", p)
		}
		if len(problems) > 0 {
			return 1
		}
		fmt.Println("config ok")
	}

	if opts.dump {
		dumpOptions(cfg)
	}

	if opts.watch {
		fmt.Printf("watching %s\n", opts.configPath)

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals
	}

	return 0
}

// registerOptions installs the built-in option schema: editor and ui
// scalars plus the compound key binding table.
func registerOptions(cfg *config.Config) {
	cfg.MustRegister(option.NewScalar("editor.tabSize", 4))
	cfg.MustRegister(option.NewScalar("editor.insertSpaces", true))
	cfg.MustRegister(option.NewScalar("ui.theme", "dark"))
	cfg.MustRegister(option.NewScalar("ui.accentColor", value.Color{}))

	cfg.MustRegister(option.MustNewCompound("bindings", []*option.Entry{
		option.NewEntry(value.KindKeybind, "key_", "binding"),
		option.NewEntry(value.KindString, "cmd_", "command"),
	}))
}

// dumpOptions prints every registered option and its current value.
func dumpOptions(cfg *config.Config) {
	for _, opt := range cfg.Registry().All() {
		fmt.Printf("%s = %s\n", opt.Name(), opt.ValueString())
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.envPrefix, "env-prefix", "GRIDCFG_", "Environment variable prefix")
	flag.BoolVar(&opts.check, "check", false, "Validate the config file and report problems")
	flag.BoolVar(&opts.dump, "dump", false, "Print every option and its current value")
	flag.BoolVar(&opts.watch, "watch", false, "Watch the config file and print changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gridcfg - compound configuration inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gridcfg [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gridcfg -c config.toml -check    Validate a config file\n")
		fmt.Fprintf(os.Stderr, "  gridcfg -c config.toml -dump     Print all option values\n")
		fmt.Fprintf(os.Stderr, "  gridcfg -c config.toml -watch    Watch for live changes\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("gridcfg %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if !opts.check && !opts.dump && !opts.watch {
		opts.dump = true
	}

	return opts
}
