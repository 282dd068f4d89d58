package reconcile

import (
	"sort"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Dedupe collapses records sharing a canonical key into one, keeping the
// highest-priority disposition (CONFIRMED beats CANDIDATE beats FALSE
// POSITIVE). Ties within equal priority resolve to input order; that
// stability is an implementation detail, not a guarantee to callers.
// Records with an empty canonical key never match anything and are all kept.
func Dedupe(records []model.CanonicalRecord) []model.CanonicalRecord {
	type keyed struct {
		rec model.CanonicalRecord
		key string
	}

	sorted := make([]keyed, len(records))
	for i, r := range records {
		sorted[i] = keyed{rec: r, key: NormalizeKey(r.ObjectName)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].key != sorted[j].key {
			return sorted[i].key < sorted[j].key
		}
		return sorted[i].rec.Disposition.Priority() < sorted[j].rec.Disposition.Priority()
	})

	out := make([]model.CanonicalRecord, 0, len(sorted))
	seen := make(map[string]bool, len(sorted))
	for _, k := range sorted {
		if k.key != "" && seen[k.key] {
			continue
		}
		seen[k.key] = true
		out = append(out, k.rec)
	}
	return out
}
