package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/structgen/internal/cli/output"
	"github.com/leapstack-labs/structgen/internal/engine"
	"github.com/leapstack-labs/structgen/internal/natsort"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List compounds and their parts in structure order",
		Long: `List every compound under root with its parts in the order the
structure file would record them. Nothing is written.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List compounds (auto-detect output format)
  structgen list ./objects

  # List as JSON
  structgen list ./objects --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}

	return cmd
}

type listPartJSON struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Content  string `json:"content"`
}

type listCompoundJSON struct {
	Name  string         `json:"name"`
	Parts []listPartJSON `json:"parts"`
	Error string         `json:"error,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd, args)
	r := cmdCtx.Renderer

	eng, err := cmdCtx.NewEngine(nil)
	if err != nil {
		return err
	}
	sorter, err := cmdCtx.Cfg.Comparator()
	if err != nil {
		return err
	}

	report, err := eng.Plan(cmd.Context())
	if report == nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(listJSON(report, sorter)); err != nil {
			return err
		}
		return failedErr(report)
	}

	r.Header(1, fmt.Sprintf("Compounds (%d total)", len(report.Results)))
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("")
	}

	var rows [][]string
	for _, res := range report.Results {
		for _, rec := range res.Structure.Records {
			rows = append(rows, []string{
				res.Compound,
				strconv.Itoa(rec.Position),
				rec.Part,
				sorter.Classify(rec.Part).Kind.String(),
			})
		}
	}
	r.Table([]string{"Compound", "Position", "Part", "Kind"}, rows)

	for _, res := range report.Failed() {
		r.Warning(fmt.Sprintf("%s: %v", res.Compound, res.Err))
	}
	return failedErr(report)
}

func listJSON(report *engine.Report, sorter *natsort.Comparator) []listCompoundJSON {
	out := make([]listCompoundJSON, 0, len(report.Results))
	for _, res := range report.Results {
		c := listCompoundJSON{Name: res.Compound, Parts: []listPartJSON{}}
		if res.Err != nil {
			c.Error = res.Err.Error()
		}
		for _, rec := range res.Structure.Records {
			c.Parts = append(c.Parts, listPartJSON{
				Position: rec.Position,
				Name:     rec.Part,
				Kind:     sorter.Classify(rec.Part).Kind.String(),
				Content:  rec.Content,
			})
		}
		out = append(out, c)
	}
	return out
}
