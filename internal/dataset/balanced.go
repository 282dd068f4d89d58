package dataset

import (
	"math/rand"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Balanced builds a training set from a deduplicated record set: every
// CONFIRMED record plus at most maxFalsePositives FALSE POSITIVE records,
// sampled and shuffled with the given seed so reruns produce the same file.
// CANDIDATE records are excluded; they carry no training label.
func Balanced(records []model.CanonicalRecord, maxFalsePositives int, seed int64) []model.CanonicalRecord {
	var confirmed, falsePositives []model.CanonicalRecord
	for _, r := range records {
		switch r.Disposition {
		case model.DispositionConfirmed:
			confirmed = append(confirmed, r)
		case model.DispositionFalsePositive:
			falsePositives = append(falsePositives, r)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	if len(falsePositives) > maxFalsePositives {
		rng.Shuffle(len(falsePositives), func(i, j int) {
			falsePositives[i], falsePositives[j] = falsePositives[j], falsePositives[i]
		})
		falsePositives = falsePositives[:maxFalsePositives]
	}

	out := make([]model.CanonicalRecord, 0, len(confirmed)+len(falsePositives))
	out = append(out, confirmed...)
	out = append(out, falsePositives...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
