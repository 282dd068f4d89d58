package reconcile

import (
	"strings"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Per-mission disposition vocabularies, keyed by the uppercased raw code.
//
// TESS CP appears in upstream catalogs both as "community planet candidate"
// and "confirmed planet"; this pipeline maps CP to CONFIRMED everywhere so a
// single policy holds across every reconciliation path.
var tessVocabulary = map[string]model.Disposition{
	"CP":  model.DispositionConfirmed,
	"KP":  model.DispositionConfirmed,
	"PC":  model.DispositionCandidate,
	"APC": model.DispositionCandidate,
	"FP":  model.DispositionFalsePositive,
	"FA":  model.DispositionFalsePositive,
	"NTP": model.DispositionFalsePositive,
	"EB":  model.DispositionFalsePositive, // eclipsing binary
	"IS":  model.DispositionFalsePositive, // instrumental signal
	"V":   model.DispositionFalsePositive, // variable star
	"BEB": model.DispositionFalsePositive, // background eclipsing binary
}

var keplerVocabulary = map[string]model.Disposition{
	"CONFIRMED":      model.DispositionConfirmed,
	"CANDIDATE":      model.DispositionCandidate,
	"FALSE POSITIVE": model.DispositionFalsePositive,
}

// K2 dispositions appear as full words in k2pandc and as single-letter codes
// in older candidate lists; both spellings map identically.
var k2Vocabulary = map[string]model.Disposition{
	"CONFIRMED":      model.DispositionConfirmed,
	"CANDIDATE":      model.DispositionCandidate,
	"FALSE POSITIVE": model.DispositionFalsePositive,
	"C":              model.DispositionConfirmed,
	"K":              model.DispositionConfirmed,
	"P":              model.DispositionCandidate,
	"U":              model.DispositionCandidate, // unconfirmed
	"F":              model.DispositionFalsePositive,
}

// genericVocabulary covers the ARCHIVE confirmed-planet feed and any
// mission without a dedicated table.
var genericVocabulary = map[string]model.Disposition{
	"CONFIRMED":      model.DispositionConfirmed,
	"PLANET":         model.DispositionConfirmed,
	"CANDIDATE":      model.DispositionCandidate,
	"FALSE POSITIVE": model.DispositionFalsePositive,
	"FP":             model.DispositionFalsePositive,
	"BINARY":         model.DispositionFalsePositive,
	"VARIABLE":       model.DispositionFalsePositive,
}

func vocabularyFor(mission model.Mission) map[string]model.Disposition {
	switch mission {
	case model.MissionTESS:
		return tessVocabulary
	case model.MissionKepler:
		return keplerVocabulary
	case model.MissionK2:
		return k2Vocabulary
	default:
		return genericVocabulary
	}
}

// ReconcileDisposition maps a raw mission disposition code onto the canonical
// classification. The match is case-insensitive. An unrecognized code passes
// through uppercased with ok=false; callers must count these as a
// data-quality signal rather than coerce them silently.
func ReconcileDisposition(raw string, mission model.Mission) (disp model.Disposition, ok bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if d, found := vocabularyFor(mission)[code]; found {
		return d, true
	}
	return model.Disposition(code), false
}
