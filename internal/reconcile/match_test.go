package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

func TestMatch_ThresholdLabels(t *testing.T) {
	records := []model.CanonicalRecord{
		rec(model.MissionKepler, "K00711.03", model.DispositionCandidate),
		rec(model.MissionKepler, "K00711.02", model.DispositionCandidate),
	}
	predictions := []model.PredictionRecord{
		{ObjectName: "711.03", PredictedProbability: 0.91},
		{ObjectName: "711.02", PredictedProbability: 0.12},
	}

	out, report := Match(predictions, records, 0.5)
	require.Len(t, out, 2)
	assert.Equal(t, model.DispositionConfirmed, out[0].Disposition)
	assert.Equal(t, model.DispositionFalsePositive, out[1].Disposition)
	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 0, report.Unmatched)
}

func TestMatch_TieAtThresholdIsConfirmed(t *testing.T) {
	records := []model.CanonicalRecord{
		rec(model.MissionKepler, "K00711.03", model.DispositionCandidate),
	}
	predictions := []model.PredictionRecord{
		{ObjectName: "711.03", PredictedProbability: 0.5},
	}

	out, _ := Match(predictions, records, 0.5)
	require.Len(t, out, 1)
	assert.Equal(t, model.DispositionConfirmed, out[0].Disposition)
}

func TestMatch_CarriesPhysicalFieldsThrough(t *testing.T) {
	record := rec(model.MissionKepler, "K00711.03", model.DispositionCandidate)
	record.Period = model.Float(124.5)
	record.PlanetRadius = model.Float(2.6)

	out, _ := Match([]model.PredictionRecord{
		{ObjectName: "TOI-711.03", PredictedProbability: 0.9},
	}, []model.CanonicalRecord{record}, 0.5)

	require.Len(t, out, 1)
	require.NotNil(t, out[0].Period)
	assert.InDelta(t, 124.5, *out[0].Period, 1e-9)
	assert.Equal(t, "K00711.03", out[0].ObjectName)
}

func TestMatch_UnmatchedSynthesizesPlaceholder(t *testing.T) {
	out, report := Match([]model.PredictionRecord{
		{ObjectName: "known.01", PredictedProbability: 0.9},
		{ObjectName: "mystery.99", PredictedProbability: 0.7},
	}, []model.CanonicalRecord{
		rec(model.MissionKepler, "known.01", model.DispositionCandidate),
	}, 0.5)

	require.Len(t, out, 2)
	assert.Equal(t, "PLANET_1", out[1].ObjectName)
	assert.Equal(t, model.MissionArchive, out[1].Mission)
	assert.Equal(t, model.DispositionConfirmed, out[1].Disposition)
	assert.Equal(t, "UNKNOWN", out[1].DiscoveryFacility)

	assert.Equal(t, 1, report.Unmatched)
	assert.Equal(t, []string{"mystery.99"}, report.UnmatchedNames)
}

func TestMatch_PlaceholderIndexIsInputPosition(t *testing.T) {
	out, _ := Match([]model.PredictionRecord{
		{ObjectName: "a", PredictedProbability: 0.1},
		{ObjectName: "b", PredictedProbability: 0.1},
	}, nil, 0.5)

	require.Len(t, out, 2)
	assert.Equal(t, "PLANET_0", out[0].ObjectName)
	assert.Equal(t, "PLANET_1", out[1].ObjectName)
}

func TestMatch_FirstSeenRecordWins(t *testing.T) {
	first := rec(model.MissionKepler, "K00001.01", model.DispositionCandidate)
	first.DiscoveryFacility = "first"
	second := rec(model.MissionTESS, "1.01", model.DispositionCandidate)
	second.DiscoveryFacility = "second"

	out, _ := Match([]model.PredictionRecord{
		{ObjectName: "1.01", PredictedProbability: 0.9},
	}, []model.CanonicalRecord{first, second}, 0.5)

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].DiscoveryFacility)
}

func TestMatch_OutputFollowsPredictionOrder(t *testing.T) {
	records := []model.CanonicalRecord{
		rec(model.MissionKepler, "K00002.01", model.DispositionCandidate),
		rec(model.MissionKepler, "K00001.01", model.DispositionCandidate),
	}
	predictions := []model.PredictionRecord{
		{ObjectName: "1.01", PredictedProbability: 0.9},
		{ObjectName: "2.01", PredictedProbability: 0.9},
	}

	out, _ := Match(predictions, records, 0.5)
	require.Len(t, out, 2)
	assert.Equal(t, "K00001.01", out[0].ObjectName)
	assert.Equal(t, "K00002.01", out[1].ObjectName)
}

func TestMatch_EmptyKeysNeverMatch(t *testing.T) {
	// A record without a usable name must stay out of the lookup; a blank
	// prediction name gets a placeholder, not that record.
	records := []model.CanonicalRecord{
		rec(model.MissionKepler, "", model.DispositionCandidate),
		rec(model.MissionKepler, "   ", model.DispositionCandidate),
	}
	predictions := []model.PredictionRecord{
		{ObjectName: "", PredictedProbability: 0.9},
		{ObjectName: "  ", PredictedProbability: 0.9},
	}

	out, report := Match(predictions, records, 0.5)
	require.Len(t, out, 2)
	assert.Equal(t, "PLANET_0", out[0].ObjectName)
	assert.Equal(t, "PLANET_1", out[1].ObjectName)
	assert.Equal(t, 0, report.Matched)
	assert.Equal(t, 2, report.Unmatched)
}

func TestMatch_UnmatchedNamesCapped(t *testing.T) {
	var predictions []model.PredictionRecord
	for i := 0; i < 12; i++ {
		predictions = append(predictions, model.PredictionRecord{
			ObjectName:           fmt.Sprintf("ghost.%02d", i),
			PredictedProbability: 0.9,
		})
	}

	_, report := Match(predictions, nil, 0.5)
	assert.Equal(t, 12, report.Unmatched)
	assert.Nil(t, report.UnmatchedNames)
}

func TestMatch_EmptyPredictions(t *testing.T) {
	out, report := Match(nil, []model.CanonicalRecord{
		rec(model.MissionKepler, "K00001.01", model.DispositionCandidate),
	}, 0.5)
	assert.Empty(t, out)
	assert.Equal(t, 0, report.Predictions)
}
