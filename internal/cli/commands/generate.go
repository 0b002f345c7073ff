package commands

import (
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [root]",
		Aliases: []string{"gen"},
		Short:   "Write a structure file for every compound",
		Long: `Scan root for compound directories, sort each compound's part
directories in natural order and write one structure file per compound.

Parts sort numerically (1, 2, 10), alphabetically ignoring case (A, b, C) and
by English ordinal words (first, second, third). Files that would not change
are left untouched, so repeated runs are cheap.

A compound that cannot be read or written is reported as failed; the other
compounds are still processed and the command exits non-zero.`,
		Example: `  # Write structure.xml into every compound under ./objects
  structgen generate ./objects

  # Write JSON structures into a separate tree
  structgen generate ./objects --format json --output-dir ./structures

  # Show what would be written
  structgen gen ./objects --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print structure documents instead of writing them")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd, args)
	r := cmdCtx.Renderer

	eng, err := cmdCtx.NewEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	report, err := eng.Run(cmd.Context())
	if report == nil {
		return err
	}

	if cmdCtx.Cfg.DryRun {
		// stdout holds the documents; only failures are reported
		for _, res := range report.Failed() {
			r.Error(res.Compound + ": " + res.Err.Error())
		}
		return failedErr(report)
	}

	if err := renderReport(r, report); err != nil {
		return err
	}
	return failedErr(report)
}
