package dataset

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orbit-research/exoplanet-cli/internal/archive"
	"github.com/orbit-research/exoplanet-cli/internal/model"
	"github.com/orbit-research/exoplanet-cli/internal/reconcile"
	"github.com/orbit-research/exoplanet-cli/internal/table"
)

// SourceResult is the outcome of fetching and reconciling one source.
// Exactly one of Err or Records is meaningful.
type SourceResult struct {
	Source  Source
	Table   *table.Table // raw rows as fetched, before mapping
	Records []model.CanonicalRecord
	Report  *reconcile.MapReport
	Err     error
}

// Fetcher is the narrow collaborator the dataset layer consumes: fetch rows
// matching a filter from a named external table.
type Fetcher interface {
	FetchTable(ctx context.Context, q archive.Query) (*table.Table, error)
}

// FetchAll pulls every source and reconciles each table into canonical
// records. Sources are fetched concurrently but results are returned in
// input order, preserving the defined merge order downstream deduplication
// and matching depend on. A failed source is reported in its slot, not
// dropped; FetchAll errs only when every source failed.
func FetchAll(ctx context.Context, client Fetcher, sources []Source) ([]SourceResult, error) {
	results := make([]SourceResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = fetchOne(ctx, client, src)
			return nil
		})
	}
	_ = g.Wait() // per-source errors land in the result slots

	usable := 0
	for _, res := range results {
		if res.Err == nil && len(res.Records) > 0 {
			usable++
		}
	}
	if usable == 0 {
		return results, eris.New("dataset: no usable data from any source")
	}
	return results, nil
}

func fetchOne(ctx context.Context, client Fetcher, src Source) SourceResult {
	log := zap.L().With(zap.String("source", src.Name))

	t, err := client.FetchTable(ctx, src.Query)
	if err != nil {
		log.Warn("source fetch failed, skipping", zap.Error(err))
		return SourceResult{Source: src, Err: err}
	}
	log.Info("source fetched", zap.Int("rows", t.Len()))

	records, report, err := reconcile.MapTable(t, src.Mission)
	if err != nil {
		log.Warn("source mapping failed, skipping", zap.Error(err))
		return SourceResult{Source: src, Table: t, Report: report, Err: err}
	}
	if len(report.Unmapped) > 0 {
		log.Warn("unrecognized dispositions passed through",
			zap.Any("codes", report.Unmapped))
	}

	return SourceResult{Source: src, Table: t, Records: records, Report: report}
}

// Combine concatenates the records of every successful source in input
// order and returns the per-source reports alongside.
func Combine(results []SourceResult) ([]model.CanonicalRecord, []*reconcile.MapReport) {
	var records []model.CanonicalRecord
	var reports []*reconcile.MapReport
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		records = append(records, res.Records...)
		if res.Report != nil {
			reports = append(reports, res.Report)
		}
	}
	return records, reports
}
