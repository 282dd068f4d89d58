package dataset

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/orbit-research/exoplanet-cli/internal/model"
	"github.com/orbit-research/exoplanet-cli/internal/reconcile"
)

// Summary describes a finished dataset: row counts, class and mission
// distributions, and physical-field completeness.
type Summary struct {
	Total        int            `yaml:"total"`
	Dispositions map[string]int `yaml:"dispositions"`
	Missions     map[string]int `yaml:"missions"`
	// Completeness counts non-unknown values per physical field.
	Completeness map[string]int `yaml:"completeness"`
}

// Report bundles everything a run observed: the dataset summary, per-source
// mapping reports, and the prediction match report when one applies.
type Report struct {
	Summary Summary                `yaml:"summary"`
	Sources []*reconcile.MapReport `yaml:"sources,omitempty"`
	Match   *reconcile.MatchReport `yaml:"match,omitempty"`
	Skipped []string               `yaml:"skipped_sources,omitempty"`
}

// Summarize computes distribution and completeness statistics for a record set.
func Summarize(records []model.CanonicalRecord) Summary {
	s := Summary{
		Total:        len(records),
		Dispositions: make(map[string]int),
		Missions:     make(map[string]int),
		Completeness: make(map[string]int),
	}
	for _, r := range records {
		s.Dispositions[string(r.Disposition)]++
		s.Missions[string(r.Mission)]++
		for field, v := range map[string]*float64{
			"period":        r.Period,
			"planet_radius": r.PlanetRadius,
			"star_temp":     r.StarTemp,
			"star_radius":   r.StarRadius,
			"star_mass":     r.StarMass,
		} {
			if v != nil {
				s.Completeness[field]++
			}
		}
	}
	return s
}

// WriteReport writes the run report as YAML.
func WriteReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "dataset: marshal report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write report %s", path)
	}
	return nil
}

// LogSummary logs the summary with grouped counts for operators.
func LogSummary(name string, s Summary) {
	p := message.NewPrinter(language.English)
	log := zap.L().With(zap.String("dataset", name))

	log.Info("dataset summary", zap.String("total", p.Sprintf("%d", s.Total)))
	for _, label := range sortedKeys(s.Dispositions) {
		log.Info("disposition count",
			zap.String("disposition", label),
			zap.String("count", p.Sprintf("%d", s.Dispositions[label])),
		)
	}
	for _, label := range sortedKeys(s.Missions) {
		log.Info("mission count",
			zap.String("mission", label),
			zap.String("count", p.Sprintf("%d", s.Missions[label])),
		)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
