package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/mouse-blink/nodecov/internal/adapter"
	m "github.com/mouse-blink/nodecov/internal/model"
)

// preciseCoverage asks for per-call counts at block granularity.
var preciseCoverage = m.CoverageOptions{CallCount: true, Detailed: true}

// Collector runs an entrypoint under precise coverage and returns the raw snapshot.
type Collector interface {
	Collect(ctx context.Context, entrypoint string) (m.Collection, error)
}

type collector struct {
	runtime adapter.Runtime
}

// NewCollector constructs a Collector backed by the provided runtime.
func NewCollector(runtime adapter.Runtime) Collector {
	return &collector{runtime: runtime}
}

// Collect opens a session, enables the profiler, starts coverage, runs the
// entrypoint to completion, snapshots and stops coverage, strictly in that
// order. Coverage is stopped and the session closed on every exit path.
func (c *collector) Collect(ctx context.Context, entrypoint string) (m.Collection, error) {
	if entrypoint == "" {
		return m.Collection{}, ErrMissingEntrypoint
	}

	sess, err := c.runtime.Open(ctx, entrypoint)
	if err != nil {
		if errors.Is(err, adapter.ErrRuntimeUnavailable) {
			return m.Collection{}, &CollectorUnavailableError{Err: err}
		}

		return m.Collection{}, fmt.Errorf("open session: %w", err)
	}

	defer func() { _ = sess.Close() }()

	if err := sess.Enable(ctx); err != nil {
		return m.Collection{}, &CollectorUnavailableError{Err: fmt.Errorf("enable profiler: %w", err)}
	}

	if err := sess.StartPreciseCoverage(ctx, preciseCoverage); err != nil {
		return m.Collection{}, &CollectorUnavailableError{Err: fmt.Errorf("start precise coverage: %w", err)}
	}

	stopped := false

	defer func() {
		if !stopped {
			_ = sess.StopPreciseCoverage(context.WithoutCancel(ctx))
		}
	}()

	if err := sess.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return m.Collection{}, err
		}

		return m.Collection{}, &EntrypointError{Entrypoint: entrypoint, Err: err}
	}

	snapshot, err := sess.TakePreciseCoverage(ctx)
	if err != nil {
		return m.Collection{}, fmt.Errorf("take precise coverage: %w", err)
	}

	stopped = true

	if err := sess.StopPreciseCoverage(ctx); err != nil {
		return m.Collection{}, fmt.Errorf("stop precise coverage: %w", err)
	}

	return m.Collection{
		Records: snapshot.Result,
		Self:    sess.Self(),
		Unit:    sess.OffsetUnit(),
	}, nil
}
