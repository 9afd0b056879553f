package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/focuskeeper/focuskeeper/internal/classifier"
	"github.com/focuskeeper/focuskeeper/internal/daemon"
	"github.com/focuskeeper/focuskeeper/pkg/detector"
	"github.com/focuskeeper/focuskeeper/pkg/utils"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the monitor is running and what has focus",
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
				fmt.Fprintln(out, "Status: Not running")
			} else {
				fmt.Fprintf(out, "Status: Running (PID: %d)\n", pid)
				if started, err := pidFileTime(dm.PIDFile()); err == nil {
					fmt.Fprintf(out, "Uptime: %s\n", utils.Since(started, time.Now()))
				}
			}
			fmt.Fprintf(out, "Poll Interval: %v\n", cfg.Monitor.PollInterval)
			fmt.Fprintf(out, "Target keywords: %q\n", cfg.Keywords.Targets)
			fmt.Fprintf(out, "Ignored keywords: %q\n", cfg.Keywords.Ignored)

			backend, err := detector.New()
			if err != nil {
				fmt.Fprintf(out, "\nCould not detect current window: %v\n", err)
				return nil
			}
			defer backend.Close()

			h, err := backend.FocusedWindow()
			if err != nil {
				fmt.Fprintf(out, "\nCould not detect current window: %v\n", err)
				return nil
			}
			snap, err := backend.Enumerate()
			if err != nil {
				fmt.Fprintf(out, "\nCould not list windows: %v\n", err)
				return nil
			}

			fmt.Fprintf(out, "\nCurrent Window:\n")
			rec, ok := snap.Find(h)
			if !ok {
				fmt.Fprintf(out, "  Handle: %s (not a listed top-level window)\n", h)
				return nil
			}
			c := classifier.New(cfg.Keywords.Targets, cfg.Keywords.Ignored)
			fmt.Fprintf(out, "  Title: %s\n", rec.Title)
			fmt.Fprintf(out, "  Class: %s\n", rec.ClassName)
			fmt.Fprintf(out, "  Kind: %s\n", c.Classify(rec))
			fmt.Fprintf(out, "  Display: %s\n", backend.GetDisplayServer())
			return nil
		},
	}
}

// pidFileTime approximates the monitor's start time by the PID file's
// modification time.
func pidFileTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
