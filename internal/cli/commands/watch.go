package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leapstack-labs/structgen/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Regenerate structures when compounds change",
		Long: `Generate structures once, then keep watching root and regenerate
whenever a compound or part directory is created, removed or renamed.
Press Ctrl-C to stop.`,
		Example: `  structgen watch ./objects
  structgen watch ./objects --debounce 1s -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}

	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before regenerating")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd, args)
	r := cmdCtx.Renderer

	eng, err := cmdCtx.NewEngine(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	writer, err := cmdCtx.Cfg.Writer()
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(cmdCtx.Cfg.Root, func(ctx context.Context) error {
		report, err := eng.Run(ctx)
		if report == nil {
			return err
		}
		r.Header(2, "Run "+time.Now().Format(time.TimeOnly))
		if rerr := renderReport(r, report); rerr != nil {
			return rerr
		}
		return err
	},
		watch.WithDebounce(debounce),
		watch.WithIgnoreNames(writer.Name()),
		watch.WithExcludeCompounds(writer.RootEntry(cmdCtx.Cfg.Root)),
		watch.WithLogger(cmdCtx.Logger),
	)

	r.Muted("Watching " + cmdCtx.Cfg.Root + " (Ctrl-C to stop)")
	start := time.Now()
	if err := w.Watch(ctx); err != nil {
		return err
	}
	r.Muted("Stopped after " + time.Since(start).Round(time.Second).String())
	return nil
}
