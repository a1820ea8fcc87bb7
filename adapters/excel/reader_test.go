package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gerorank/domain/core"
	"gerorank/domain/mcda"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const validHeader = "Intervention,Lifespan (30%),Healthspan (10%),Conservation (10%),Human Trials (20%),Safety & Tolerability (20%),Cost/Access (10%)"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScoreReaderCSV(t *testing.T) {
	path := writeTempCSV(t, validHeader+"\n"+
		"Rapamycin,5,4,5,3,4,4\n"+
		"Metformin,3,3,4,5,5,5\n")

	reader := NewScoreReader(path, "")
	table, err := reader.ResolveScores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rapamycin", "Metformin"}, table.Names())

	rapa, err := table.Lookup("Rapamycin")
	require.NoError(t, err)
	assert.Equal(t, mcda.Vector{5, 4, 5, 3, 4, 4}, rapa.Scores)

	scheme, err := reader.HeaderScheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mcda.SchemeBaseline, scheme.Name)
	assert.InDelta(t, 0.30, scheme.Weight(mcda.DomainLifespan), 1e-12)
	assert.InDelta(t, 0.20, scheme.Weight(mcda.DomainSafety), 1e-12)
	assert.InDelta(t, 0.10, scheme.Weight(mcda.DomainCostAccess), 1e-12)
}

func TestScoreReaderWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.xlsx")
	f := excelize.NewFile()
	const sheet = "Scoring"
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	header := []interface{}{"Intervention", "Lifespan (30%)", "Healthspan (10%)", "Conservation (10%)",
		"Human Trials (20%)", "Safety & Tolerability (20%)", "Cost/Access (10%)"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"Rapamycin", 5, 4, 5, 3, 4, 4}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reader := NewScoreReader(path, sheet)
	table, err := reader.ResolveScores(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Rapamycin", table.At(0).Name)
}

func TestScoreReaderSkipsBlankRows(t *testing.T) {
	path := writeTempCSV(t, validHeader+"\n"+
		"Rapamycin,5,4,5,3,4,4\n"+
		",,,,,,\n")

	reader := NewScoreReader(path, "")
	table, err := reader.ResolveScores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestScoreReaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "missing intervention column",
			content: "Name,Lifespan (30%),Healthspan (10%),Conservation (10%),Human Trials (20%),Safety & Tolerability (20%),Cost/Access (10%)\nX,1,1,1,1,1,1\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "Intervention")
			},
		},
		{
			name:    "missing domain column",
			content: "Intervention,Lifespan (30%),Healthspan (10%)\nX,1,1\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "domain columns")
			},
		},
		{
			name:    "non-numeric score",
			content: validHeader + "\nX,abc,1,1,1,1,1\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "non-numeric")
			},
		},
		{
			name:    "score out of range",
			content: validHeader + "\nX,7,1,1,1,1,1\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, core.ErrScoreRange)
			},
		},
		{
			name:    "missing cell",
			content: validHeader + "\nX,1,1,1,1,1\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "missing")
			},
		},
		{
			name:    "duplicate intervention",
			content: validHeader + "\nX,1,1,1,1,1,1\nX,2,2,2,2,2,2\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, core.ErrDuplicate)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)
			reader := NewScoreReader(path, "")
			_, err := reader.ResolveScores(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestScoreReaderFileNotFound(t *testing.T) {
	reader := NewScoreReader(filepath.Join(t.TempDir(), "nope.csv"), "")
	_, err := reader.ResolveScores(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
