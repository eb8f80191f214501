package controller

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	m "github.com/mouse-blink/nodecov/internal/model"
	"github.com/spf13/cobra"
)

const (
	coveredGutter   = "  "
	uncoveredGutter = "! "
)

// SimpleUI implements UI using plain text, marking uncovered lines in a gutter
// so the distinction survives redirection to files and pipes.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayBanner prints the banner without decoration.
func (s *SimpleUI) DisplayBanner() {
	s.printf("%s\n", figure.NewFigure(bannerText, "", true).String())
}

// DisplayFileReport prints the file header and its gutter-marked lines.
func (s *SimpleUI) DisplayFileReport(report m.FileReport) error {
	if _, err := fmt.Fprintf(s.cmd.OutOrStdout(), "\nFile: %s\n\n", report.Path); err != nil {
		return err
	}

	for _, line := range report.Lines {
		gutter := coveredGutter
		if !line.Covered {
			gutter = uncoveredGutter
		}

		if _, err := fmt.Fprintf(s.cmd.OutOrStdout(), "%s%s\n", gutter, line.Text); err != nil {
			return err
		}
	}

	return nil
}

// DisplayWarning prints a warning to stderr.
func (s *SimpleUI) DisplayWarning(err error) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "warning: %v\n", err)
}

// DisplayError prints a fatal error to stderr.
func (s *SimpleUI) DisplayError(err error) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "\nnodecov error: %v\n\n", err)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
