package commands

import (
	"io"
	"log/slog"

	"github.com/leapstack-labs/structgen/internal/cli/config"
	"github.com/leapstack-labs/structgen/internal/cli/output"
	"github.com/leapstack-labs/structgen/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config and logger stored by the root
// command. A positional root argument replaces the configured root.
func NewCommandContext(cmd *cobra.Command, args []string) *CommandContext {
	cfg := *config.GetConfig(cmd.Context())
	if len(args) > 0 && args[0] != "" {
		cfg.Root = args[0]
	}
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      &cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewEngine builds a pipeline engine for the command's root. Documents of a
// dry run are written to dryOut.
func (c *CommandContext) NewEngine(dryOut io.Writer) (*engine.Engine, error) {
	if err := c.Cfg.ValidateRoot(); err != nil {
		return nil, err
	}
	sorter, err := c.Cfg.Comparator()
	if err != nil {
		return nil, err
	}
	writer, err := c.Cfg.Writer()
	if err != nil {
		return nil, err
	}

	return engine.New(engine.Config{
		Root:         c.Cfg.Root,
		Ignore:       c.Cfg.Ignore,
		Comparator:   sorter,
		Writer:       writer,
		Jobs:         c.Cfg.Jobs,
		DryRun:       c.Cfg.DryRun,
		DryRunOutput: dryOut,
		Logger:       c.Logger,
	}), nil
}
