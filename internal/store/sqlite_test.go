package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteSaveAndGetDataset(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	records := []model.CanonicalRecord{
		{
			Mission:           model.MissionKepler,
			ObjectName:        "K00711.03",
			Disposition:       model.DispositionCandidate,
			Period:            model.Float(124.52),
			DiscoveryFacility: "Kepler",
		},
		{
			Mission:           model.MissionTESS,
			ObjectName:        "TOI-1468.01",
			Disposition:       model.DispositionConfirmed,
			DiscoveryFacility: "TESS",
		},
	}

	id, err := st.SaveDataset(ctx, "training-v1", records)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	back, err := st.GetDataset(ctx, id)
	require.NoError(t, err)
	require.Len(t, back, 2)

	// Saved order survives the round trip.
	assert.Equal(t, "K00711.03", back[0].ObjectName)
	assert.Equal(t, model.DispositionCandidate, back[0].Disposition)
	require.NotNil(t, back[0].Period)
	assert.InDelta(t, 124.52, *back[0].Period, 1e-9)
	assert.Nil(t, back[0].StarTemp)

	assert.Equal(t, "TOI-1468.01", back[1].ObjectName)
	assert.Nil(t, back[1].Period)
}

func TestSQLiteGetDataset_UnknownID(t *testing.T) {
	st := newTestSQLite(t)

	records, err := st.GetDataset(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteListDatasets(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	_, err := st.SaveDataset(ctx, "first", []model.CanonicalRecord{
		{Mission: model.MissionKepler, ObjectName: "K00001.01", Disposition: model.DispositionCandidate, DiscoveryFacility: "Kepler"},
	})
	require.NoError(t, err)
	_, err = st.SaveDataset(ctx, "second", nil)
	require.NoError(t, err)

	infos, err := st.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	names := []string{infos[0].Name, infos[1].Name}
	assert.ElementsMatch(t, []string{"first", "second"}, names)
	for _, info := range infos {
		assert.NotEmpty(t, info.ID)
		assert.False(t, info.CreatedAt.IsZero())
	}
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	st := newTestSQLite(t)
	assert.NoError(t, st.Migrate(context.Background()))
}
