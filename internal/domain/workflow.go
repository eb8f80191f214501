// Package domain holds the coverage collection and reporting logic.
package domain

import (
	"context"

	"github.com/mouse-blink/nodecov/internal/controller"
)

// RunArgs holds the arguments of a coverage run.
type RunArgs struct {
	Entrypoint string
}

// Workflow defines the coverage operations exposed to the CLI.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
}

type workflow struct {
	ui        controller.UI
	collector Collector
	reporter  Reporter
}

// NewWorkflow creates a new Workflow instance with the provided components.
func NewWorkflow(ui controller.UI, collector Collector, reporter Reporter) Workflow {
	return &workflow{
		ui:        ui,
		collector: collector,
		reporter:  reporter,
	}
}

// Run prints the banner, collects coverage for the entrypoint and renders one
// section per covered user file. Unreadable files produce a warning and are
// skipped; every other error ends the run.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	w.ui.DisplayBanner()

	collection, err := w.collector.Collect(ctx, args.Entrypoint)
	if err != nil {
		return err
	}

	results, err := w.reporter.Report(ctx, collection)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Err != nil {
			w.ui.DisplayWarning(result.Err)
			continue
		}

		if err := w.ui.DisplayFileReport(result.Report); err != nil {
			return err
		}
	}

	return nil
}
