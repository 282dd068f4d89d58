// Package dataset orchestrates fetching mission tables, reconciling them
// into canonical records, and summarizing the result.
package dataset

import (
	"github.com/orbit-research/exoplanet-cli/internal/archive"
	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Kind groups sources by the record class they contribute.
type Kind string

const (
	KindCandidates     Kind = "candidates"
	KindFalsePositives Kind = "false_positives"
	KindConfirmed      Kind = "confirmed"
)

// Source declares one external table to pull: the TAP query plus the
// mission whose schema mapping applies to the rows.
type Source struct {
	Name    string
	Mission model.Mission
	Kind    Kind
	Query   archive.Query
}

// CandidateSources lists the per-mission candidate feeds in merge order.
// Merge order is fixed here, not by fetch completion, so dedup priority and
// first-seen matching stay deterministic.
func CandidateSources() []Source {
	return []Source{
		{
			Name:    "kepler_candidates",
			Mission: model.MissionKepler,
			Kind:    KindCandidates,
			Query:   archive.Query{Table: "cumulative", Where: "koi_disposition='CANDIDATE'", OrderBy: "kepoi_name"},
		},
		{
			Name:    "tess_candidates",
			Mission: model.MissionTESS,
			Kind:    KindCandidates,
			Query:   archive.Query{Table: "toi", Where: "tfopwg_disp='CP'", OrderBy: "toi"},
		},
		{
			Name:    "k2_candidates",
			Mission: model.MissionK2,
			Kind:    KindCandidates,
			Query:   archive.Query{Table: "k2pandc", Where: "k2c_disp='CANDIDATE'", OrderBy: "epic_name"},
		},
	}
}

// FalsePositiveSources lists the per-mission false-positive feeds in merge order.
func FalsePositiveSources() []Source {
	return []Source{
		{
			Name:    "kepler_false_positives",
			Mission: model.MissionKepler,
			Kind:    KindFalsePositives,
			Query:   archive.Query{Table: "cumulative", Where: "koi_disposition='FALSE POSITIVE'", OrderBy: "kepoi_name"},
		},
		{
			Name:    "tess_false_positives",
			Mission: model.MissionTESS,
			Kind:    KindFalsePositives,
			Query:   archive.Query{Table: "toi", Where: "tfopwg_disp='FP'", OrderBy: "toi"},
		},
		{
			Name:    "k2_false_positives",
			Mission: model.MissionK2,
			Kind:    KindFalsePositives,
			Query:   archive.Query{Table: "k2pandc", Where: "k2c_disp='FALSE POSITIVE'", OrderBy: "epic_name"},
		},
	}
}

// ArchiveSource is the confirmed-planet feed from the planetary systems
// table; every row maps to disposition CONFIRMED.
func ArchiveSource() Source {
	return Source{
		Name:    "archive_confirmed",
		Mission: model.MissionArchive,
		Kind:    KindConfirmed,
		Query: archive.Query{
			Table:   "ps",
			Columns: "pl_name,pl_orbper,pl_rade,st_teff,st_rad,st_mass,disc_facility",
			Where:   "default_flag=1",
			OrderBy: "pl_name",
		},
	}
}
