package table

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Prediction input requires these two columns; extra columns are ignored.
const (
	predObjectColumn = "object_name"
	predProbColumn   = "predicted_probability"
)

// ReadPredictions loads prediction records from a CSV or XLSX file,
// dispatching on the file extension.
func ReadPredictions(path string) ([]model.PredictionRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readPredictionsXLSX(path)
	}
	t, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	return predictionsFromTable(t, path)
}

func predictionsFromTable(t *Table, path string) ([]model.PredictionRecord, error) {
	for _, required := range []string{predObjectColumn, predProbColumn} {
		if !t.HasColumn(required) {
			return nil, eris.Errorf("predictions: %s: missing required column %q", path, required)
		}
	}

	preds := make([]model.PredictionRecord, 0, t.Len())
	for i, row := range t.Rows {
		prob, err := strconv.ParseFloat(strings.TrimSpace(row[predProbColumn]), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "predictions: %s: row %d: parse probability %q", path, i, row[predProbColumn])
		}
		preds = append(preds, model.PredictionRecord{
			ObjectName:           row[predObjectColumn],
			PredictedProbability: prob,
		})
	}
	return preds, nil
}

func readPredictionsXLSX(path string) ([]model.PredictionRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "predictions: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("predictions: %s: workbook has no sheets", path)
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return []model.PredictionRecord{}, nil
	}

	header := make([]string, len(sheet.Rows[0].Cells))
	for j, cell := range sheet.Rows[0].Cells {
		header[j] = cell.String()
	}

	t := New(header)
	for _, xr := range sheet.Rows[1:] {
		row := make(Row, len(header))
		for j, col := range header {
			if j < len(xr.Cells) {
				row[col] = xr.Cells[j].String()
			}
		}
		t.Append(row)
	}
	return predictionsFromTable(t, path)
}
