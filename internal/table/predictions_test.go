package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predictions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPredictions_CSV(t *testing.T) {
	path := writeTempCSV(t, "object_name,predicted_probability,extra\n711.03,0.91,x\n1468.01,0.12,y\n")

	preds, err := ReadPredictions(path)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "711.03", preds[0].ObjectName)
	assert.InDelta(t, 0.91, preds[0].PredictedProbability, 1e-9)
	assert.InDelta(t, 0.12, preds[1].PredictedProbability, 1e-9)
}

func TestReadPredictions_MissingColumn(t *testing.T) {
	path := writeTempCSV(t, "object_name,score\n711.03,0.91\n")

	_, err := ReadPredictions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predicted_probability")
}

func TestReadPredictions_BadProbabilityFatal(t *testing.T) {
	path := writeTempCSV(t, "object_name,predicted_probability\n711.03,high\n")

	_, err := ReadPredictions(path)
	assert.Error(t, err)
}

func TestReadPredictions_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("predictions")
	require.NoError(t, err)

	header := sheet.AddRow()
	header.AddCell().SetString("object_name")
	header.AddCell().SetString("predicted_probability")

	row := sheet.AddRow()
	row.AddCell().SetString("TOI-1468.01")
	row.AddCell().SetFloat(0.73)

	require.NoError(t, f.Save(path))

	preds, err := ReadPredictions(path)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Equal(t, "TOI-1468.01", preds[0].ObjectName)
	assert.InDelta(t, 0.73, preds[0].PredictedProbability, 1e-6)
}

func TestReadPredictions_XLSXEmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	f := xlsx.NewFile()
	_, err := f.AddSheet("empty")
	require.NoError(t, err)
	require.NoError(t, f.Save(path))

	preds, err := ReadPredictions(path)
	require.NoError(t, err)
	assert.Empty(t, preds)
}
