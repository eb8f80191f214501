// Package controller renders coverage reports and diagnostics for the terminal.
package controller

import (
	m "github.com/mouse-blink/nodecov/internal/model"
)

const bannerText = "nodecov"

// UI defines how a coverage run is presented.
// Implementations can use different output methods (plain text, styled terminal output).
type UI interface {
	// DisplayBanner prints the start-up banner.
	DisplayBanner()
	// DisplayFileReport prints the header and every annotated line of a file.
	DisplayFileReport(report m.FileReport) error
	// DisplayWarning reports a recoverable problem.
	DisplayWarning(err error)
	// DisplayError reports a fatal problem.
	DisplayError(err error)
}
