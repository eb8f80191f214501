package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	m "github.com/mouse-blink/nodecov/internal/model"
)

// TUI implements UI with colored terminal output: uncovered lines in bold
// bright red, covered lines in green.
type TUI struct {
	output io.Writer
	errors io.Writer
	styles styles
}

type styles struct {
	banner    lipgloss.Style
	fileLabel lipgloss.Style
	filePath  lipgloss.Style
	covered   lipgloss.Style
	uncovered lipgloss.Style
	warning   lipgloss.Style
	failure   lipgloss.Style
}

// NewTUI creates a new TUI writing reports to output and diagnostics to errors.
func NewTUI(output, errors io.Writer) *TUI {
	return &TUI{
		output: output,
		errors: errors,
		styles: newStyles(lipgloss.NewRenderer(output), lipgloss.NewRenderer(errors)),
	}
}

func newStyles(out, errOut *lipgloss.Renderer) styles {
	// Source text is printed verbatim, tabs included.
	line := out.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return styles{
		banner: out.NewStyle().
			Foreground(lipgloss.Color("#FFFF00")).
			Background(lipgloss.Color("#000000")).
			Bold(true),
		fileLabel: out.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		filePath:  out.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		covered:   line.Foreground(lipgloss.Color("2")),
		uncovered: line.Foreground(lipgloss.Color("9")).Bold(true),
		warning:   errOut.NewStyle().Foreground(lipgloss.Color("11")),
		failure:   errOut.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// DisplayBanner prints the figlet banner.
func (t *TUI) DisplayBanner() {
	banner := figure.NewFigure(bannerText, "", true).String()
	_, _ = fmt.Fprintln(t.output, t.styles.banner.Render(banner))
}

// DisplayFileReport prints the file header and its colored lines.
func (t *TUI) DisplayFileReport(report m.FileReport) error {
	header := fmt.Sprintf("\n%s %s\n", t.styles.fileLabel.Render("File:"), t.styles.filePath.Render(string(report.Path)))
	if _, err := fmt.Fprintln(t.output, header); err != nil {
		return err
	}

	for _, line := range report.Lines {
		style := t.styles.covered
		if !line.Covered {
			style = t.styles.uncovered
		}

		if _, err := fmt.Fprintln(t.output, style.Render(line.Text)); err != nil {
			return err
		}
	}

	return nil
}

// DisplayWarning prints a warning to the error stream.
func (t *TUI) DisplayWarning(err error) {
	_, _ = fmt.Fprintln(t.errors, t.styles.warning.Render(fmt.Sprintf("warning: %v", err)))
}

// DisplayError prints a fatal error to the error stream.
func (t *TUI) DisplayError(err error) {
	_, _ = fmt.Fprintf(t.errors, "\n%s\n\n", t.styles.failure.Render(fmt.Sprintf("nodecov error: %v", err)))
}
