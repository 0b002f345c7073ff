// Package cli provides the command-line interface for structgen.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/leapstack-labs/structgen/internal/cli/commands"
	"github.com/leapstack-labs/structgen/internal/cli/config"
	"github.com/leapstack-labs/structgen/internal/cli/output"
	"github.com/leapstack-labs/structgen/internal/natsort"
	"github.com/leapstack-labs/structgen/internal/structure"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "structgen",
		Short: "structgen - compound object structure generator",
		Long: `structgen writes a structure file for every compound object under a root
directory, listing the compound's part directories in natural order:
numbers by value, letters ignoring case and English ordinal words by rank.

Layout:
  root/<compound>/<part>/...  ->  root/<compound>/structure.xml`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			loaded, err := config.Load(cfgFile, cwd, cmd.Flags())
			if err != nil {
				return err
			}
			cfg := loaded.Config

			logger := newLogger(cmd, cfg.Verbose)
			if loaded.File != "" {
				logger.Debug("using config file", "path", loaded.File)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Compound object structure generator
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./structgen.yaml)")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.String("format", "", "Structure file format (xml|json|yaml)")
	pf.String("file-name", "", "Structure file name (default: structure.<format>)")
	pf.String("output-dir", "", "Write structures to <dir>/<compound>/ instead of the compound directory")
	pf.IntP("jobs", "j", 0, "Number of compounds processed concurrently")
	pf.String("mixed-order", "", "Order of names of different kinds (kind|lexical)")
	pf.StringSlice("ignore", nil, "Skip compound and part names matching a glob pattern (repeatable)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", fixedCompletion(output.Modes...))
	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletion(structure.Formats...))
	_ = rootCmd.RegisterFlagCompletionFunc("mixed-order", fixedCompletion(natsort.MixedByKind.String(), natsort.MixedLexical.String()))

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewSortCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger logs to stderr, at debug level when verbose. Every line carries
// the run id so interleaved watch runs can be told apart.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.NewString(), "command", strings.TrimPrefix(cmd.CommandPath(), "structgen "))
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for structgen.

To load completions:

Bash:
  $ source <(structgen completion bash)
  
  # To load completions for each session, execute once:
  # Linux:
  $ structgen completion bash > /etc/bash_completion.d/structgen
  # macOS:
  $ structgen completion bash > $(brew --prefix)/etc/bash_completion.d/structgen

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  
  # To load completions for each session, execute once:
  $ structgen completion zsh > "${fpath[1]}/_structgen"
  
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ structgen completion fish | source
  
  # To load completions for each session, execute once:
  $ structgen completion fish > ~/.config/fish/completions/structgen.fish

PowerShell:
  PS> structgen completion powershell | Out-String | Invoke-Expression
  
  # To load completions for every new session, run:
  PS> structgen completion powershell > structgen.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
	return cmd
}
