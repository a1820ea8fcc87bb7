package export

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"

	"gerorank/domain/simulation"
	apperrors "gerorank/internal/errors"
)

// Output file names, matching the published analysis artifacts.
const (
	IntervalFileName   = "weighted_score_intervals.csv"
	RobustnessFileName = "ranking_robustness_weights_p5.csv"
)

// WriteIntervalCSV writes the interval summary table sorted by
// descending mean weighted score.
func WriteIntervalCSV(path string, summaries []simulation.IntervalSummary) error {
	rows := make([]simulation.IntervalSummary, len(summaries))
	copy(rows, summaries)
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Mean > rows[b].Mean })

	records := [][]string{{"Intervention", "WeightedScore_Mean", "WeightedScore_P2_5", "WeightedScore_P97_5"}}
	for _, s := range rows {
		records = append(records, []string{
			s.Intervention,
			formatFloat(s.Mean),
			formatFloat(s.P2_5),
			formatFloat(s.P97_5),
		})
	}
	return writeCSV(path, records)
}

// WriteRobustnessCSV writes the robustness summary table sorted by
// ascending mean rank, ties by descending base score.
func WriteRobustnessCSV(path string, summaries []simulation.RobustnessSummary) error {
	rows := make([]simulation.RobustnessSummary, len(summaries))
	copy(rows, summaries)
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].MeanRank != rows[b].MeanRank {
			return rows[a].MeanRank < rows[b].MeanRank
		}
		return rows[a].BaseWeightedScore > rows[b].BaseWeightedScore
	})

	records := [][]string{{"Intervention", "BaseWeightedScore", "MeanRank", "Rank_P2_5", "Rank_P97_5", "P_Top1", "P_Top3"}}
	for _, s := range rows {
		records = append(records, []string{
			s.Intervention,
			formatFloat(s.BaseWeightedScore),
			formatFloat(s.MeanRank),
			formatFloat(s.RankP2_5),
			formatFloat(s.RankP97_5),
			formatFloat(s.PTop1),
			formatFloat(s.PTop3),
		})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return apperrors.WithCode(apperrors.CodeExportError, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.WithCode(apperrors.CodeExportError, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
