package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/leapstack-labs/structgen/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [name...]",
		Short: "Print names in natural part order",
		Long: `Print the given names in the order parts are recorded in a structure
file, one per line. Without arguments, names are read from stdin, one per
line.`,
		Example: `  structgen sort 10 2 1
  ls ./objects/book | structgen sort
  structgen sort third First second --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args)
		},
	}

	return cmd
}

type sortedNameJSON struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func runSort(cmd *cobra.Command, args []string) error {
	// names are not a root directory
	cmdCtx := NewCommandContext(cmd, nil)
	r := cmdCtx.Renderer

	sorter, err := cmdCtx.Cfg.Comparator()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names, err = readLines(cmd)
		if err != nil {
			return err
		}
	}
	names = sorter.Sorted(names)

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]sortedNameJSON, 0, len(names))
		for _, n := range names {
			out = append(out, sortedNameJSON{Name: n, Kind: sorter.Classify(n).Kind.String()})
		}
		return r.JSON(out)
	}

	for _, n := range names {
		r.Println(n)
	}
	return nil
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return lines, nil
}
