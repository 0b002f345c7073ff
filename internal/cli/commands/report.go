package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/structgen/internal/cli/output"
	"github.com/leapstack-labs/structgen/internal/engine"
)

// reportJSON is the JSON shape of a pipeline report.
type reportJSON struct {
	Root       string         `json:"root"`
	DurationMS int64          `json:"duration_ms"`
	Summary    map[string]int `json:"summary"`
	Compounds  []compoundJSON `json:"compounds"`
}

type compoundJSON struct {
	Name   string   `json:"name"`
	Path   string   `json:"path,omitempty"`
	Status string   `json:"status"`
	Parts  []string `json:"parts,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func toReportJSON(report *engine.Report) reportJSON {
	out := reportJSON{
		Root:       report.Root,
		DurationMS: report.Duration.Milliseconds(),
		Summary:    map[string]int{},
		Compounds:  make([]compoundJSON, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		c := compoundJSON{
			Name:   res.Compound,
			Path:   res.Path,
			Status: string(res.Status),
			Parts:  res.Structure.Parts(),
		}
		if res.Err != nil {
			c.Error = res.Err.Error()
		}
		out.Summary[string(res.Status)]++
		out.Compounds = append(out.Compounds, c)
	}
	return out
}

// renderReport prints the outcome of a generate run.
func renderReport(r *output.Renderer, report *engine.Report) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(toReportJSON(report))
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Structures (%d compounds)", len(report.Results)))
		r.Println("")
		rows := make([][]string, 0, len(report.Results))
		for _, res := range report.Results {
			rows = append(rows, []string{res.Compound, string(res.Status), fmt.Sprint(len(res.Structure.Records)), detail(res)})
		}
		r.Table([]string{"Compound", "Status", "Parts", "Detail"}, rows)
	default:
		r.Header(1, fmt.Sprintf("Structures (%d compounds)", len(report.Results)))
		for _, res := range report.Results {
			r.StatusLine(res.Compound, string(res.Status), detail(res))
		}
	}

	r.Println("")
	if r.EffectiveMode() == output.ModeText && len(report.Failed()) == 0 {
		r.Success(summary(report))
		return nil
	}
	r.Println(summary(report))
	return nil
}

func detail(res engine.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	return res.Path
}

func summary(report *engine.Report) string {
	return fmt.Sprintf("%d written, %d unchanged, %d failed in %s",
		report.Count(engine.StatusWritten),
		report.Count(engine.StatusUnchanged),
		report.Count(engine.StatusFailed),
		report.Duration.Round(time.Millisecond),
	)
}

// failedErr turns failed compounds into the command's error.
func failedErr(report *engine.Report) error {
	if n := len(report.Failed()); n > 0 {
		return fmt.Errorf("%d of %d compounds failed", n, len(report.Results))
	}
	return nil
}
