package domain

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/nodecov/internal/adapter"
	m "github.com/mouse-blink/nodecov/internal/model"
)

// Reporter turns raw coverage records into annotated listings.
type Reporter interface {
	// Report filters the collection down to user files and builds one result
	// per surviving record, in record order. A file that cannot be read yields
	// a result carrying a SourceUnavailableError; other files are unaffected.
	Report(ctx context.Context, collection m.Collection) ([]m.FileResult, error)
}

type reporter struct {
	fsAdapter adapter.SourceFSAdapter
	jobs      int
}

// NewReporter constructs a Reporter reading sources through fsAdapter with up
// to jobs concurrent reads. jobs <= 0 uses GOMAXPROCS.
func NewReporter(fsAdapter adapter.SourceFSAdapter, jobs int) Reporter {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	return &reporter{
		fsAdapter: fsAdapter,
		jobs:      jobs,
	}
}

func (r *reporter) Report(ctx context.Context, collection m.Collection) ([]m.FileResult, error) {
	records := FilterResults(collection.Records, collection.Self)
	if len(records) == 0 {
		return []m.FileResult{}, nil
	}

	// Each goroutine owns its own slot, so no locking is needed.
	results := make([]m.FileResult, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.jobs, len(records)))

	for i, record := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = r.reportRecord(record, collection.Unit)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *reporter) reportRecord(record m.CoverageRecord, unit m.OffsetUnit) m.FileResult {
	path, _ := recordPath(record)

	source, err := r.fsAdapter.ReadFile(path)
	if err != nil {
		return m.FileResult{
			Report: m.FileReport{Path: path},
			Err:    &SourceUnavailableError{Path: path, Err: err},
		}
	}

	return m.FileResult{
		Report: GenerateCoverageReport(path, string(source), record.Functions, unit),
	}
}
