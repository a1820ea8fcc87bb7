package export

import (
	"fmt"

	"gerorank/domain/mcda"
	apperrors "gerorank/internal/errors"

	"github.com/xuri/excelize/v2"
)

// EnrichedFileName matches the published enriched dataset artifact.
const EnrichedFileName = "Intervention_list_&_scores.xlsx"

// WriteEnrichedWorkbook writes the enriched dataset: raw domain
// scores, every scheme's weighted score and rank, derived metrics and
// category, one row per intervention in input order.
func WriteEnrichedWorkbook(path string, table *mcda.ScoreTable, schemes *mcda.SchemeTable) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := []interface{}{"Intervention"}
	for _, d := range mcda.AllDomains {
		header = append(header, d.String())
	}
	schemeNames := schemes.Names()
	for _, name := range schemeNames {
		header = append(header, name+"_score", name+"_rank")
	}
	header = append(header, "Translational_Readiness", "Aging_Impact", "Category")

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.Wrap(err, "failed to write header row")
	}

	// Scores and ranks per scheme, computed once over the whole table
	type schemeResult struct {
		scores []float64
		ranks  []int
	}
	results := make(map[string]schemeResult, len(schemeNames))
	for _, name := range schemeNames {
		scheme, err := schemes.Lookup(name)
		if err != nil {
			return apperrors.Wrapf(err, "scheme %s", name)
		}
		scores := mcda.ScoreAll(table, scheme)
		results[name] = schemeResult{scores: scores, ranks: mcda.Rank(scores)}
	}
	derived := mcda.ComputeDerivedMetrics(table)

	for i := 0; i < table.Len(); i++ {
		iv := table.At(i)
		row := []interface{}{iv.Name}
		for _, s := range iv.Scores {
			row = append(row, s)
		}
		for _, name := range schemeNames {
			row = append(row, results[name].scores[i], results[name].ranks[i])
		}
		row = append(row, derived[i].TranslationalReadiness, derived[i].AgingImpact, string(derived[i].Category))

		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.Wrapf(err, "failed to write row for %s", iv.Name)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.Wrapf(err, "failed to save workbook %s", path)
	}
	return nil
}
