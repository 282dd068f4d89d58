// Package table provides the flat-table abstraction the pipeline reads and
// writes: an ordered sequence of rows sharing one column header.
package table

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Row maps column names to string cell values for one table row.
type Row map[string]string

// Table is an ordered sequence of rows with a shared column header.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column header.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether the table header contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row to the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Parse reads CSV data into a Table. The first record is the header.
// An empty input yields an empty table with no columns.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // mission schemas vary release-to-release

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "table: read header")
	}

	t := New(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "table: read row %d", t.Len()+1)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		t.Append(row)
	}
	return t, nil
}

// ReadCSV loads a CSV file into a Table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	t, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "table: parse %s", path)
	}
	return t, nil
}

// Write streams the table as CSV in header column order.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Columns); err != nil {
		return eris.Wrap(err, "table: write header")
	}
	cells := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			cells[j] = row[col]
		}
		if err := cw.Write(cells); err != nil {
			return eris.Wrapf(err, "table: write row %d", i)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "table: flush")
}

// WriteCSV writes the table to a CSV file.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "table: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	return t.Write(f)
}

// FromRecords builds a canonical nine-column table from records.
func FromRecords(records []model.CanonicalRecord) *Table {
	t := New(model.Columns)
	for _, r := range records {
		cells := r.Row()
		row := make(Row, len(model.Columns))
		for i, col := range model.Columns {
			row[col] = cells[i]
		}
		t.Append(row)
	}
	return t
}

// ToRecords converts a canonical-format table back into records. Missing
// numeric cells become nil, matching the unknown marker contract.
func ToRecords(t *Table) []model.CanonicalRecord {
	records := make([]model.CanonicalRecord, 0, t.Len())
	for _, row := range t.Rows {
		records = append(records, model.CanonicalRecord{
			Mission:           model.Mission(row["mission"]),
			ObjectName:        row["object_name"],
			Disposition:       model.Disposition(row["disposition"]),
			Period:            model.ParseOptional(row["period"]),
			PlanetRadius:      model.ParseOptional(row["planet_radius"]),
			StarTemp:          model.ParseOptional(row["star_temp"]),
			StarRadius:        model.ParseOptional(row["star_radius"]),
			StarMass:          model.ParseOptional(row["star_mass"]),
			DiscoveryFacility: row["discovery_facility"],
		})
	}
	return records
}
