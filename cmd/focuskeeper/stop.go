package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/focuskeeper/focuskeeper/internal/daemon"
)

func newStopCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop a running monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			dm := daemon.New(cfg.Daemon.PIDFile)
			running, pid, err := dm.IsRunning()
			if err != nil {
				return errors.Wrap(err, "failed to check monitor status")
			}
			if !running {
				fmt.Fprintln(out, "Monitor is not running")
				return nil
			}

			fmt.Fprintf(out, "Stopping monitor (PID: %d)...\n", pid)
			if err := dm.Stop(); err != nil {
				return errors.Wrap(err, "failed to stop monitor")
			}

			fmt.Fprintln(out, "Monitor stopped successfully")
			return nil
		},
	}
}
