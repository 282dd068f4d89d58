package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/orbit-research/exoplanet-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, narrowed so tests can
// substitute pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Close()
}

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres connects to Postgres and wraps the pool in a store.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	records    INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS dataset_records (
	dataset_id         TEXT NOT NULL REFERENCES datasets(id),
	position           INTEGER NOT NULL,
	mission            TEXT NOT NULL,
	object_name        TEXT NOT NULL,
	disposition        TEXT NOT NULL,
	period             DOUBLE PRECISION,
	planet_radius      DOUBLE PRECISION,
	star_temp          DOUBLE PRECISION,
	star_radius        DOUBLE PRECISION,
	star_mass          DOUBLE PRECISION,
	discovery_facility TEXT NOT NULL,
	PRIMARY KEY (dataset_id, position)
);

CREATE INDEX IF NOT EXISTS idx_dataset_records_object ON dataset_records(object_name);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

var datasetRecordColumns = []string{
	"dataset_id", "position", "mission", "object_name", "disposition",
	"period", "planet_radius", "star_temp", "star_radius", "star_mass",
	"discovery_facility",
}

func (s *PostgresStore) SaveDataset(ctx context.Context, name string, records []model.CanonicalRecord) (string, error) {
	id := uuid.New().String()

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO datasets (id, name, records, created_at) VALUES ($1, $2, $3, $4)`,
		id, name, len(records), time.Now().UTC(),
	); err != nil {
		return "", eris.Wrap(err, "postgres: insert dataset")
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			id, i, string(r.Mission), r.ObjectName, string(r.Disposition),
			r.Period, r.PlanetRadius, r.StarTemp, r.StarRadius, r.StarMass,
			r.DiscoveryFacility,
		}
	}
	if _, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"dataset_records"}, datasetRecordColumns, pgx.CopyFromRows(rows),
	); err != nil {
		return "", eris.Wrap(err, "postgres: copy records")
	}

	return id, nil
}

func (s *PostgresStore) GetDataset(ctx context.Context, id string) ([]model.CanonicalRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT mission, object_name, disposition,
		        period, planet_radius, star_temp, star_radius, star_mass, discovery_facility
		 FROM dataset_records WHERE dataset_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query dataset %s", id)
	}
	defer rows.Close()

	var records []model.CanonicalRecord
	for rows.Next() {
		var r model.CanonicalRecord
		if err := rows.Scan(
			&r.Mission, &r.ObjectName, &r.Disposition,
			&r.Period, &r.PlanetRadius, &r.StarTemp, &r.StarRadius, &r.StarMass,
			&r.DiscoveryFacility,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate records")
}

func (s *PostgresStore) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, records, created_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list datasets")
	}
	defer rows.Close()

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Records, &info.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dataset")
		}
		infos = append(infos, info)
	}
	return infos, eris.Wrap(rows.Err(), "postgres: iterate datasets")
}
