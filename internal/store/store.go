// Package store persists labeled datasets for downstream analysis, with
// SQLite and Postgres backends behind one interface.
package store

import (
	"context"
	"time"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// DatasetInfo describes one persisted dataset.
type DatasetInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Records   int       `json:"records"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for labeled datasets.
type Store interface {
	// SaveDataset persists a record set under a generated dataset ID.
	SaveDataset(ctx context.Context, name string, records []model.CanonicalRecord) (string, error)

	// GetDataset loads the records of a dataset in their saved order.
	GetDataset(ctx context.Context, id string) ([]model.CanonicalRecord, error)

	// ListDatasets returns dataset metadata, newest first.
	ListDatasets(ctx context.Context) ([]DatasetInfo, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
