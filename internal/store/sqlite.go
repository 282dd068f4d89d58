package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	records    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS dataset_records (
	dataset_id         TEXT NOT NULL REFERENCES datasets(id),
	position           INTEGER NOT NULL,
	mission            TEXT NOT NULL,
	object_name        TEXT NOT NULL,
	disposition        TEXT NOT NULL,
	period             REAL,
	planet_radius      REAL,
	star_temp          REAL,
	star_radius        REAL,
	star_mass          REAL,
	discovery_facility TEXT NOT NULL,
	PRIMARY KEY (dataset_id, position)
);

CREATE INDEX IF NOT EXISTS idx_dataset_records_object ON dataset_records(object_name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDataset(ctx context.Context, name string, records []model.CanonicalRecord) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, records, created_at) VALUES (?, ?, ?, ?)`,
		id, name, len(records), now,
	); err != nil {
		return "", eris.Wrap(err, "sqlite: insert dataset")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_records
		 (dataset_id, position, mission, object_name, disposition,
		  period, planet_radius, star_temp, star_radius, star_mass, discovery_facility)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: prepare insert record")
	}
	defer stmt.Close() //nolint:errcheck

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			id, i, string(r.Mission), r.ObjectName, string(r.Disposition),
			r.Period, r.PlanetRadius, r.StarTemp, r.StarRadius, r.StarMass,
			r.DiscoveryFacility,
		); err != nil {
			return "", eris.Wrapf(err, "sqlite: insert record %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit")
	}
	return id, nil
}

func (s *SQLiteStore) GetDataset(ctx context.Context, id string) ([]model.CanonicalRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT mission, object_name, disposition,
		        period, planet_radius, star_temp, star_radius, star_mass, discovery_facility
		 FROM dataset_records WHERE dataset_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query dataset %s", id)
	}
	defer rows.Close() //nolint:errcheck

	var records []model.CanonicalRecord
	for rows.Next() {
		var r model.CanonicalRecord
		if err := rows.Scan(
			&r.Mission, &r.ObjectName, &r.Disposition,
			&r.Period, &r.PlanetRadius, &r.StarTemp, &r.StarRadius, &r.StarMass,
			&r.DiscoveryFacility,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate records")
}

func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, records, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list datasets")
	}
	defer rows.Close() //nolint:errcheck

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Records, &info.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dataset")
		}
		infos = append(infos, info)
	}
	return infos, eris.Wrap(rows.Err(), "sqlite: iterate datasets")
}
