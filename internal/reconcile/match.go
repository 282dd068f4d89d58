package reconcile

import (
	"fmt"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// maxUnmatchedListed caps how many unmatched raw names the report carries
// verbatim; beyond that only the count is reported.
const maxUnmatchedListed = 10

// MatchReport is the diagnostic side channel of Match: counts plus (when
// small enough to be useful) the literal unmatched input names.
type MatchReport struct {
	Predictions    int      `yaml:"predictions"`
	Matched        int      `yaml:"matched"`
	Unmatched      int      `yaml:"unmatched"`
	UnmatchedNames []string `yaml:"unmatched_names,omitempty"`
}

// Match joins prediction scores against the canonical record set by
// canonical key and overrides each matched record's disposition with the
// thresholded prediction. Probability >= threshold means CONFIRMED; a tie at
// exactly the threshold resolves to CONFIRMED.
//
// The lookup keeps the first-seen record per key in input order; later
// duplicates are ignored, not merged. Unmatched predictions synthesize a
// PLANET_{index} placeholder instead of being dropped. Output order follows
// prediction input order, one record per prediction.
func Match(predictions []model.PredictionRecord, records []model.CanonicalRecord, threshold float64) ([]model.CanonicalRecord, *MatchReport) {
	lookup := make(map[string]model.CanonicalRecord, len(records))
	for _, r := range records {
		key := NormalizeKey(r.ObjectName)
		if key == "" {
			continue
		}
		if _, exists := lookup[key]; !exists {
			lookup[key] = r
		}
	}

	report := &MatchReport{Predictions: len(predictions)}
	out := make([]model.CanonicalRecord, 0, len(predictions))

	for i, pred := range predictions {
		disposition := model.DispositionFalsePositive
		if pred.PredictedProbability >= threshold {
			disposition = model.DispositionConfirmed
		}

		key := NormalizeKey(pred.ObjectName)
		if rec, found := lookup[key]; found {
			rec.Disposition = disposition
			out = append(out, rec)
			report.Matched++
			continue
		}

		out = append(out, model.CanonicalRecord{
			Mission:           model.MissionArchive,
			ObjectName:        fmt.Sprintf("PLANET_%d", i),
			Disposition:       disposition,
			DiscoveryFacility: "UNKNOWN",
		})
		report.Unmatched++
		if len(report.UnmatchedNames) < maxUnmatchedListed {
			report.UnmatchedNames = append(report.UnmatchedNames, pred.ObjectName)
		}
	}

	if report.Unmatched > maxUnmatchedListed {
		report.UnmatchedNames = nil
	}
	return out, report
}
