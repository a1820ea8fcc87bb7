package report

import (
	"fmt"
	"sort"
	"strings"

	"gerorank/domain/simulation"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer turns a completed analysis run into a human-readable
// report. Markdown is the native format; HTML is derived from it.
type Renderer struct {
	topN int
}

// NewRenderer creates a renderer that highlights the top N
// interventions in each section.
func NewRenderer(topN int) *Renderer {
	if topN <= 0 {
		topN = 5
	}
	return &Renderer{topN: topN}
}

// Markdown renders the run as a markdown document.
func (r *Renderer) Markdown(run *simulation.AnalysisRun) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Ranking analysis: %s scheme\n\n", run.Scheme)
	fmt.Fprintf(&b, "- Run: `%s`\n", run.ID)
	fmt.Fprintf(&b, "- Input fingerprint: `%s`\n", run.Fingerprint)
	fmt.Fprintf(&b, "- Score jitter: %d trials, half-width %g, seed %d\n",
		run.IntervalParams.Trials, run.IntervalParams.Jitter, run.IntervalParams.Seed)
	fmt.Fprintf(&b, "- Weight perturbation: %d trials, fraction %g, seed %d\n",
		run.RobustnessParams.Trials, run.RobustnessParams.Perturbation, run.RobustnessParams.Seed)
	fmt.Fprintf(&b, "- Runtime: %d ms\n\n", run.RuntimeMs)

	b.WriteString("## Baseline ranking\n\n")
	b.WriteString("| Rank | Intervention | Weighted score |\n")
	b.WriteString("|---|---|---|\n")
	for _, row := range run.Baseline {
		if row.Rank > r.topN {
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %.3f |\n", row.Rank, row.Intervention, row.WeightedScore)
	}

	b.WriteString("\n## Score uncertainty (95% credible intervals)\n\n")
	b.WriteString("| Intervention | Mean | P2.5 | P97.5 |\n")
	b.WriteString("|---|---|---|---|\n")
	intervals := make([]simulation.IntervalSummary, len(run.Intervals))
	copy(intervals, run.Intervals)
	sort.SliceStable(intervals, func(a, b int) bool { return intervals[a].Mean > intervals[b].Mean })
	for i, s := range intervals {
		if i >= r.topN {
			break
		}
		fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.3f |\n", s.Intervention, s.Mean, s.P2_5, s.P97_5)
	}

	b.WriteString("\n## Rank stability under weight perturbation\n\n")
	b.WriteString("| Intervention | Mean rank | Rank P2.5 | Rank P97.5 | P(top-1) | P(top-3) |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	robustness := make([]simulation.RobustnessSummary, len(run.Robustness))
	copy(robustness, run.Robustness)
	sort.SliceStable(robustness, func(a, b int) bool {
		if robustness[a].MeanRank != robustness[b].MeanRank {
			return robustness[a].MeanRank < robustness[b].MeanRank
		}
		return robustness[a].BaseWeightedScore > robustness[b].BaseWeightedScore
	})
	for i, s := range robustness {
		if i >= r.topN {
			break
		}
		fmt.Fprintf(&b, "| %s | %.2f | %.0f | %.0f | %.1f%% | %.1f%% |\n",
			s.Intervention, s.MeanRank, s.RankP2_5, s.RankP97_5, s.PTop1*100, s.PTop3*100)
	}

	return b.String()
}

// HTML renders the run report as an HTML fragment.
func (r *Renderer) HTML(run *simulation.AnalysisRun) []byte {
	md := r.Markdown(run)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
