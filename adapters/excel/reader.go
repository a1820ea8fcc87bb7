package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gerorank/domain/mcda"
	apperrors "gerorank/internal/errors"

	"github.com/xuri/excelize/v2"
)

// weightRx extracts the percent weight from a domain column header,
// e.g. "Lifespan (30%)" -> 30.
var weightRx = regexp.MustCompile(`\((\d+(?:\.\d+)?)\s*%\)`)

// entityColumn is the required identifier column.
const entityColumn = "Intervention"

// ScoreReader reads intervention score tables from Excel workbooks or
// CSV files. It implements ports.ScoreSource.
type ScoreReader struct {
	filePath string
	sheet    string
	fileType string // "xlsx" or "csv"

	loaded  bool
	table   *mcda.ScoreTable
	scheme  mcda.WeightScheme
	columns []string
}

// NewScoreReader creates a reader for the given file. CSV files are
// detected by extension; anything else is read as a workbook from the
// named sheet.
func NewScoreReader(filePath, sheet string) *ScoreReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &ScoreReader{filePath: filePath, sheet: sheet, fileType: fileType}
}

// ResolveScores loads and validates the domain score table.
func (r *ScoreReader) ResolveScores(ctx context.Context) (*mcda.ScoreTable, error) {
	if err := r.load(); err != nil {
		return nil, err
	}
	return r.table, nil
}

// HeaderScheme returns the weighting scheme parsed from the domain
// column headers, renormalized so the parsed percents sum to 1.
func (r *ScoreReader) HeaderScheme(ctx context.Context) (mcda.WeightScheme, error) {
	if err := r.load(); err != nil {
		return mcda.WeightScheme{}, err
	}
	return r.scheme, nil
}

// DomainColumns returns the matched domain column headers in file order.
func (r *ScoreReader) DomainColumns() []string {
	return r.columns
}

func (r *ScoreReader) load() error {
	if r.loaded {
		return nil
	}
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return apperrors.SourceError(fmt.Sprintf("input file not found: %s", r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return err
	}
	if len(rows) < 2 {
		return apperrors.SourceError("input has no data rows")
	}

	if err := r.parse(rows); err != nil {
		return err
	}
	r.loaded = true
	return nil
}

func (r *ScoreReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open workbook %s", r.filePath)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read sheet %q", r.sheet)
	}
	return rows, nil
}

func (r *ScoreReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open %s", r.filePath)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse CSV %s", r.filePath)
	}
	return rows, nil
}

// parse resolves the header row into the entity column plus the six
// weighted domain columns, then validates every data row.
func (r *ScoreReader) parse(rows [][]string) error {
	header := rows[0]

	entityIdx := -1
	type domainColumn struct {
		index   int
		domain  mcda.Domain
		percent float64
		label   string
	}
	var domainCols []domainColumn

	for i, label := range header {
		trimmed := strings.TrimSpace(label)
		if trimmed == entityColumn {
			entityIdx = i
			continue
		}
		m := weightRx.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return apperrors.SourceError(fmt.Sprintf("bad weight percent in column %q", trimmed))
		}
		name := strings.TrimSpace(weightRx.ReplaceAllString(trimmed, ""))
		domain, err := mcda.ParseDisplayName(name)
		if err != nil {
			return apperrors.Wrapf(err, "column %q", trimmed)
		}
		domainCols = append(domainCols, domainColumn{index: i, domain: domain, percent: percent, label: trimmed})
	}

	if entityIdx < 0 {
		return apperrors.SourceError(fmt.Sprintf("required column %q not found", entityColumn))
	}
	if len(domainCols) != mcda.NumDomains {
		return apperrors.SourceError(fmt.Sprintf("expected %d weighted domain columns, found %d", mcda.NumDomains, len(domainCols)))
	}

	// Header percents become the file's baseline scheme, renormalized
	// so rounding in the headers cannot break the weight-sum invariant.
	var weights mcda.Vector
	for _, col := range domainCols {
		idx, ok := col.domain.Index()
		if !ok {
			return apperrors.SourceError("unmapped domain column " + col.label)
		}
		weights[idx] = col.percent / 100.0
	}
	normalized, ok := mcda.NormalizeWeights(weights)
	if !ok {
		return apperrors.SourceError("header weights sum to zero")
	}
	scheme, err := mcda.NewWeightSchemeFromVector(mcda.SchemeBaseline, normalized)
	if err != nil {
		return apperrors.Wrap(err, "header weights")
	}

	interventions := make([]mcda.Intervention, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if entityIdx >= len(row) || strings.TrimSpace(row[entityIdx]) == "" {
			return apperrors.SourceError(fmt.Sprintf("row %d has no intervention name", rowNum+2))
		}
		name := strings.TrimSpace(row[entityIdx])

		scores := make(map[mcda.Domain]float64, mcda.NumDomains)
		for _, col := range domainCols {
			if col.index >= len(row) || strings.TrimSpace(row[col.index]) == "" {
				return apperrors.SourceError(fmt.Sprintf("row %d (%s) is missing %s", rowNum+2, name, col.label))
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(row[col.index]), 64)
			if err != nil {
				return apperrors.SourceError(fmt.Sprintf("non-numeric value %q in row %d column %q", row[col.index], rowNum+2, col.label))
			}
			scores[col.domain] = value
		}

		intervention, err := mcda.NewIntervention(name, scores)
		if err != nil {
			return apperrors.Wrapf(err, "row %d", rowNum+2)
		}
		interventions = append(interventions, intervention)
	}

	table, err := mcda.NewScoreTable(interventions)
	if err != nil {
		return apperrors.Wrap(err, "score table")
	}

	r.table = table
	r.scheme = scheme
	r.columns = make([]string, len(domainCols))
	for i, col := range domainCols {
		r.columns[i] = col.label
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
