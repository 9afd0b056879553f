package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/focuskeeper/focuskeeper/internal/classifier"
	"github.com/focuskeeper/focuskeeper/pkg/detector"
	"github.com/focuskeeper/focuskeeper/pkg/integrations/process"
	"github.com/focuskeeper/focuskeeper/pkg/window"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List visible windows and how they are classified",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			backend, err := detector.New()
			if err != nil {
				return errors.Wrap(err, "failed to initialize window backend")
			}
			defer backend.Close()

			snap, err := backend.Enumerate()
			if err != nil {
				return err
			}
			focused, err := backend.FocusedWindow()
			if err != nil {
				return err
			}

			c := classifier.New(cfg.Keywords.Targets, cfg.Keywords.Ignored)
			return writeWindowList(cmd.OutOrStdout(), snap, focused, c, process.NewLookup().Name)
		},
	}
}

// writeWindowList prints one line per window in snapshot order. The
// focused window is marked with "*".
func writeWindowList(w io.Writer, snap window.Snapshot, focused window.Handle, c *classifier.Classifier, processName func(int32) string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tHANDLE\tKIND\tPROCESS\tCLASS\tTITLE")

	for _, rec := range snap.Records {
		mark := ""
		if rec.Handle == focused {
			mark = "*"
		}
		name := ""
		if processName != nil {
			name = processName(rec.PID)
		}
		title := rec.Title
		if rec.Truncated {
			title += "…"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, rec.Handle, c.Classify(rec), name, rec.ClassName, title)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d windows\n", snap.Len())
	return err
}
