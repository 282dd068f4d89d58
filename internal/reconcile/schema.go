package reconcile

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/orbit-research/exoplanet-cli/internal/model"
	"github.com/orbit-research/exoplanet-cli/internal/table"
)

// ErrMissingColumn reports that a required source column is absent from a
// mission table. Optional physical columns never trigger it; they degrade to
// the unknown marker instead.
var ErrMissingColumn = eris.New("reconcile: required source column missing")

// MissionSpec declares how one mission's native column set maps onto the
// canonical record shape: field renames plus fixed-literal defaults. All
// per-mission knowledge lives here rather than in branching logic at call
// sites.
type MissionSpec struct {
	Mission model.Mission

	// NameColumns lists identifier columns in fallback order; the first one
	// present in the source table wins. At least one must be present.
	NameColumns []string

	// DispositionColumn names the raw disposition source; when empty,
	// DispositionLiteral is assigned to every record (the ARCHIVE feed).
	DispositionColumn  string
	DispositionLiteral model.Disposition

	// Optional physical measurement columns; absent columns yield nil fields.
	PeriodColumn       string
	PlanetRadiusColumn string
	StarTempColumn     string
	StarRadiusColumn   string
	StarMassColumn     string

	// FacilityColumn names the discovery facility source; when empty,
	// FacilityLiteral is used.
	FacilityColumn  string
	FacilityLiteral string
}

var missionSpecs = map[model.Mission]MissionSpec{
	model.MissionKepler: {
		Mission:            model.MissionKepler,
		NameColumns:        []string{"kepoi_name"},
		DispositionColumn:  "koi_disposition",
		PeriodColumn:       "koi_period",
		PlanetRadiusColumn: "koi_prad",
		StarTempColumn:     "koi_steff",
		StarRadiusColumn:   "koi_srad",
		StarMassColumn:     "koi_smass",
		FacilityLiteral:    "Kepler",
	},
	model.MissionTESS: {
		Mission:            model.MissionTESS,
		NameColumns:        []string{"toi"},
		DispositionColumn:  "tfopwg_disp",
		PeriodColumn:       "pl_orbper",
		PlanetRadiusColumn: "pl_rade",
		StarTempColumn:     "st_teff",
		StarRadiusColumn:   "st_rad",
		StarMassColumn:     "st_mass",
		FacilityLiteral:    "TESS",
	},
	model.MissionK2: {
		Mission:            model.MissionK2,
		NameColumns:        []string{"epic_name", "epic_candname"},
		DispositionColumn:  "k2c_disp",
		PeriodColumn:       "pl_orbper",
		PlanetRadiusColumn: "pl_rade",
		StarTempColumn:     "st_teff",
		StarRadiusColumn:   "st_rad",
		StarMassColumn:     "st_mass",
		FacilityLiteral:    "K2",
	},
	model.MissionArchive: {
		Mission:            model.MissionArchive,
		NameColumns:        []string{"pl_name"},
		DispositionLiteral: model.DispositionConfirmed,
		PeriodColumn:       "pl_orbper",
		PlanetRadiusColumn: "pl_rade",
		StarTempColumn:     "st_teff",
		StarRadiusColumn:   "st_rad",
		StarMassColumn:     "st_mass",
		FacilityColumn:     "disc_facility",
		FacilityLiteral:    "UNKNOWN",
	},
}

// SpecFor returns the mapping spec for a mission. Unknown mission tags get a
// generic spec that carries the raw tag through as provenance.
func SpecFor(mission model.Mission) MissionSpec {
	if spec, ok := missionSpecs[mission]; ok {
		return spec
	}
	return MissionSpec{
		Mission:            mission,
		NameColumns:        []string{"object_name"},
		DispositionColumn:  "disposition",
		PeriodColumn:       "period",
		PlanetRadiusColumn: "planet_radius",
		StarTempColumn:     "star_temp",
		StarRadiusColumn:   "star_radius",
		StarMassColumn:     "star_mass",
		FacilityColumn:     "discovery_facility",
		FacilityLiteral:    string(mission),
	}
}

// MapReport aggregates per-record soft conditions observed while mapping one
// source table, so callers can audit bad mission feeds.
type MapReport struct {
	Mission     model.Mission  `yaml:"mission"`
	RowsIn      int            `yaml:"rows_in"`
	RowsMapped  int            `yaml:"rows_mapped"`
	RowsSkipped int            `yaml:"rows_skipped"`
	// Unmapped counts unrecognized raw disposition codes passed through
	// as-is, keyed by the uppercased raw value.
	Unmapped map[string]int `yaml:"unmapped_dispositions,omitempty"`
}

// MapRow translates one mission-native row into a CanonicalRecord with the
// raw disposition still in place. Missing optional columns become nil fields;
// a missing identifier column (or blank identifier cell) is an
// ErrMissingColumn for that row.
func MapRow(row table.Row, spec MissionSpec) (model.CanonicalRecord, error) {
	name := ""
	for _, col := range spec.NameColumns {
		if v, ok := row[col]; ok && strings.TrimSpace(v) != "" {
			name = strings.TrimSpace(v)
			break
		}
	}
	if name == "" {
		return model.CanonicalRecord{}, eris.Wrapf(ErrMissingColumn,
			"mission %s: no identifier in columns %v", spec.Mission, spec.NameColumns)
	}

	disposition := spec.DispositionLiteral
	if spec.DispositionColumn != "" {
		raw, ok := row[spec.DispositionColumn]
		if !ok || strings.TrimSpace(raw) == "" {
			return model.CanonicalRecord{}, eris.Wrapf(ErrMissingColumn,
				"mission %s: no disposition in column %q", spec.Mission, spec.DispositionColumn)
		}
		disposition = model.Disposition(raw)
	}

	facility := spec.FacilityLiteral
	if spec.FacilityColumn != "" {
		if v, ok := row[spec.FacilityColumn]; ok && strings.TrimSpace(v) != "" {
			facility = strings.TrimSpace(v)
		}
	}

	return model.CanonicalRecord{
		Mission:           spec.Mission,
		ObjectName:        name,
		Disposition:       disposition,
		Period:            model.ParseOptional(row[spec.PeriodColumn]),
		PlanetRadius:      model.ParseOptional(row[spec.PlanetRadiusColumn]),
		StarTemp:          model.ParseOptional(row[spec.StarTempColumn]),
		StarRadius:        model.ParseOptional(row[spec.StarRadiusColumn]),
		StarMass:          model.ParseOptional(row[spec.StarMassColumn]),
		DiscoveryFacility: facility,
	}, nil
}

// MapTable maps a whole mission table into reconciled canonical records.
// Rows missing an identifier or disposition are skipped and counted; the
// table as a whole fails only when the identifier column is absent from the
// header entirely.
func MapTable(t *table.Table, mission model.Mission) ([]model.CanonicalRecord, *MapReport, error) {
	spec := SpecFor(mission)
	report := &MapReport{
		Mission:  mission,
		RowsIn:   t.Len(),
		Unmapped: make(map[string]int),
	}

	if t.Len() > 0 {
		hasName := false
		for _, col := range spec.NameColumns {
			if t.HasColumn(col) {
				hasName = true
				break
			}
		}
		if !hasName {
			return nil, report, eris.Wrapf(ErrMissingColumn,
				"mission %s: table has none of identifier columns %v", mission, spec.NameColumns)
		}
		if spec.DispositionColumn != "" && !t.HasColumn(spec.DispositionColumn) {
			return nil, report, eris.Wrapf(ErrMissingColumn,
				"mission %s: table missing disposition column %q", mission, spec.DispositionColumn)
		}
	}

	records := make([]model.CanonicalRecord, 0, t.Len())
	for _, row := range t.Rows {
		rec, err := MapRow(row, spec)
		if err != nil {
			report.RowsSkipped++
			continue
		}

		disp, known := ReconcileDisposition(string(rec.Disposition), mission)
		if !known {
			report.Unmapped[string(disp)]++
		}
		rec.Disposition = disp

		records = append(records, rec)
		report.RowsMapped++
	}
	return records, report, nil
}
