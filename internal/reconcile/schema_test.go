package reconcile

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-research/exoplanet-cli/internal/model"
	"github.com/orbit-research/exoplanet-cli/internal/table"
)

func keplerTable(rows ...table.Row) *table.Table {
	t := table.New([]string{"kepoi_name", "koi_disposition", "koi_period", "koi_prad"})
	for _, row := range rows {
		t.Append(row)
	}
	return t
}

func TestMapTable_Kepler(t *testing.T) {
	src := keplerTable(table.Row{
		"kepoi_name":      "K00711.03",
		"koi_disposition": "CANDIDATE",
		"koi_period":      "124.52",
		"koi_prad":        "2.6",
	})

	records, report, err := MapTable(src, model.MissionKepler)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, model.MissionKepler, rec.Mission)
	assert.Equal(t, "K00711.03", rec.ObjectName)
	assert.Equal(t, model.DispositionCandidate, rec.Disposition)
	require.NotNil(t, rec.Period)
	assert.InDelta(t, 124.52, *rec.Period, 1e-9)
	assert.Equal(t, "Kepler", rec.DiscoveryFacility)
	assert.Nil(t, rec.StarTemp)

	assert.Equal(t, 1, report.RowsMapped)
	assert.Equal(t, 0, report.RowsSkipped)
}

func TestMapTable_MissingOptionalColumnsOK(t *testing.T) {
	// Physical measurement columns are optional; only identifier and
	// disposition are required.
	src := table.New([]string{"toi", "tfopwg_disp"})
	src.Append(table.Row{"toi": "1468.01", "tfopwg_disp": "PC"})

	records, _, err := MapTable(src, model.MissionTESS)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Period)
	assert.Nil(t, records[0].StarMass)
}

func TestMapTable_MissingIdentifierColumnFatal(t *testing.T) {
	src := table.New([]string{"koi_disposition"})
	src.Append(table.Row{"koi_disposition": "CANDIDATE"})

	_, _, err := MapTable(src, model.MissionKepler)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMissingColumn))
}

func TestMapTable_MissingDispositionColumnFatal(t *testing.T) {
	src := table.New([]string{"kepoi_name"})
	src.Append(table.Row{"kepoi_name": "K00711.03"})

	_, _, err := MapTable(src, model.MissionKepler)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMissingColumn))
}

func TestMapTable_BlankCellsSkipped(t *testing.T) {
	src := keplerTable(
		table.Row{"kepoi_name": "", "koi_disposition": "CANDIDATE"},
		table.Row{"kepoi_name": "K00752.01", "koi_disposition": ""},
		table.Row{"kepoi_name": "K00752.02", "koi_disposition": "CONFIRMED"},
	)

	records, report, err := MapTable(src, model.MissionKepler)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "K00752.02", records[0].ObjectName)
	assert.Equal(t, 2, report.RowsSkipped)
	assert.Equal(t, 1, report.RowsMapped)
}

func TestMapTable_K2NameFallback(t *testing.T) {
	src := table.New([]string{"epic_candname", "k2c_disp"})
	src.Append(table.Row{"epic_candname": "EPIC 201367065.01", "k2c_disp": "C"})

	records, _, err := MapTable(src, model.MissionK2)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EPIC 201367065.01", records[0].ObjectName)
	assert.Equal(t, model.DispositionConfirmed, records[0].Disposition)
}

func TestMapTable_ArchiveLiteralDisposition(t *testing.T) {
	src := table.New([]string{"pl_name", "disc_facility"})
	src.Append(table.Row{"pl_name": "Kepler-22 b", "disc_facility": "Kepler"})

	records, _, err := MapTable(src, model.MissionArchive)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.DispositionConfirmed, records[0].Disposition)
	assert.Equal(t, "Kepler", records[0].DiscoveryFacility)
}

func TestMapTable_UnmappedDispositionsCounted(t *testing.T) {
	src := keplerTable(
		table.Row{"kepoi_name": "K00001.01", "koi_disposition": "ambiguous"},
		table.Row{"kepoi_name": "K00002.01", "koi_disposition": "AMBIGUOUS"},
	)

	records, report, err := MapTable(src, model.MissionKepler)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.Disposition("AMBIGUOUS"), records[0].Disposition)
	assert.Equal(t, 2, report.Unmapped["AMBIGUOUS"])
}

func TestMapTable_UnparseableNumericBecomesUnknown(t *testing.T) {
	src := keplerTable(table.Row{
		"kepoi_name":      "K00711.03",
		"koi_disposition": "CANDIDATE",
		"koi_period":      "not-a-number",
	})

	records, _, err := MapTable(src, model.MissionKepler)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Period)
}

func TestMapTable_EmptyTable(t *testing.T) {
	records, report, err := MapTable(table.New(nil), model.MissionKepler)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, report.RowsIn)
}

func TestSpecFor_UnknownMissionGeneric(t *testing.T) {
	spec := SpecFor(model.Mission("CoRoT"))
	assert.Equal(t, []string{"object_name"}, spec.NameColumns)
	assert.Equal(t, "CoRoT", spec.FacilityLiteral)
}
