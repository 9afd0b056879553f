package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/focuskeeper/focuskeeper/internal/reporter"
)

func newReportCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:       "report [day|week|month]",
		Short:     "Summarize minimized windows by class",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"day", "week", "month"},
		RunE: func(cmd *cobra.Command, args []string) error {
			periodType := "day"
			if len(args) > 0 {
				periodType = args[0]
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			db, repo, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			rep := reporter.New(repo)
			report, err := rep.GenerateReport(periodType)
			if err != nil {
				return err
			}

			if jsonOutput {
				jsonStr, err := rep.FormatReportJSON(report)
				if err != nil {
					return errors.Wrap(err, "failed to format JSON")
				}
				fmt.Fprintln(cmd.OutOrStdout(), jsonStr)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), rep.FormatReportText(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}
