package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

const appName = "focuskeeper"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the persistent flags. Flags left unset do not override
// the config file or the environment.
type options struct {
	configPath string
	targets    []string
	ignored    []string
	logLevel   string
	noDB       bool
	serve      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Minimize distracting windows while a focus application is active",
		Long: `focuskeeper watches the focused window. When a window whose title contains
a target keyword gains focus, every other visible window is minimized,
except windows matching an ignored keyword and desktop shell windows.

Run without a command to start monitoring in the foreground.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, opts)
		},
	}

	bindFlags(root, opts)

	root.AddCommand(
		newRunCmd(opts),
		newListCmd(opts),
		newStatusCmd(opts),
		newStopCmd(opts),
		newReportCmd(opts),
		newClearCmd(opts),
		newVersionCmd(),
	)

	return root
}

func bindFlags(cmd *cobra.Command, opts *options) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/focuskeeper/config.yaml)")
	flags.StringArrayVar(&opts.targets, "target", nil, "Target keyword (repeatable); replaces the configured list")
	flags.StringArrayVar(&opts.ignored, "ignore", nil, "Ignored keyword (repeatable); replaces the configured list")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.noDB, "no-db", false, "Do not record minimize actions")
	flags.BoolVar(&opts.serve, "serve", false, "Serve the status API while monitoring")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s version %s\n", appName, version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
