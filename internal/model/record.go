// Package model defines the canonical record shape shared by every stage of
// the reconciliation pipeline.
package model

// Mission identifies the originating survey or catalog feed. It is
// provenance only and is never used for identity matching.
type Mission string

const (
	MissionKepler  Mission = "Kepler"
	MissionTESS    Mission = "TESS"
	MissionK2      Mission = "K2"
	MissionArchive Mission = "ARCHIVE"
)

// Disposition is the canonical three-valued classification of an object.
// Before reconciliation a record may carry a raw mission-specific code here;
// after reconciliation only the three canonical values are valid.
type Disposition string

const (
	DispositionConfirmed     Disposition = "CONFIRMED"
	DispositionCandidate     Disposition = "CANDIDATE"
	DispositionFalsePositive Disposition = "FALSE POSITIVE"
)

// Priority orders dispositions for deduplication. Lower wins: a CONFIRMED
// classification anywhere in the corpus must never be shadowed by a
// lower-confidence duplicate from another mission feed.
func (d Disposition) Priority() int {
	switch d {
	case DispositionConfirmed:
		return 1
	case DispositionCandidate:
		return 2
	case DispositionFalsePositive:
		return 3
	default:
		return 4
	}
}

// Known reports whether d is one of the three canonical values.
func (d Disposition) Known() bool {
	return d == DispositionConfirmed || d == DispositionCandidate || d == DispositionFalsePositive
}

// Columns is the fixed output column order for every canonical table.
var Columns = []string{
	"mission",
	"object_name",
	"disposition",
	"period",
	"planet_radius",
	"star_temp",
	"star_radius",
	"star_mass",
	"discovery_facility",
}

// CanonicalRecord is the reconciled, schema-unified representation of one
// astronomical object of interest. Numeric fields are nil when the source
// did not report a value; nil is a distinct state, not zero.
type CanonicalRecord struct {
	Mission           Mission     `json:"mission"`
	ObjectName        string      `json:"object_name"`
	Disposition       Disposition `json:"disposition"`
	Period            *float64    `json:"period,omitempty"`
	PlanetRadius      *float64    `json:"planet_radius,omitempty"`
	StarTemp          *float64    `json:"star_temp,omitempty"`
	StarRadius        *float64    `json:"star_radius,omitempty"`
	StarMass          *float64    `json:"star_mass,omitempty"`
	DiscoveryFacility string      `json:"discovery_facility"`
}

// Row renders the record as CSV cells in the canonical column order.
// Unknown numerics become empty cells, never "0".
func (r CanonicalRecord) Row() []string {
	return []string{
		string(r.Mission),
		r.ObjectName,
		string(r.Disposition),
		FormatOptional(r.Period),
		FormatOptional(r.PlanetRadius),
		FormatOptional(r.StarTemp),
		FormatOptional(r.StarRadius),
		FormatOptional(r.StarMass),
		r.DiscoveryFacility,
	}
}

// PredictionRecord is one externally computed ML score for an object.
// The probability is conventionally in [0,1] but is compared against the
// threshold as-is, without clamping.
type PredictionRecord struct {
	ObjectName           string  `json:"object_name"`
	PredictedProbability float64 `json:"predicted_probability"`
}
