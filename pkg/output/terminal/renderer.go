// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/arthur-debert/waylandify/pkg/output/report"
	"github.com/arthur-debert/waylandify/pkg/output/styles"
	"github.com/arthur-debert/waylandify/pkg/types"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles, pterm labels
// and glamour-rendered diffs
type Renderer struct {
	output io.Writer
	theme  report.Theme
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		theme: report.Theme{
			Style: func(name, s string) string { return styles.GetStyle(name).Render(s) },
			Label: label,
			Diff:  renderDiff,
		},
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.ApplyResult:
		return report.WriteApply(r.output, v, r.theme)
	case *types.InitResult:
		return report.WriteInit(r.output, v, r.theme)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return report.WriteError(r.output, err, r.theme)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", label(report.LevelInfo), msg)
	return err
}

func label(level report.Level) string {
	var p pterm.PrefixPrinter
	switch level {
	case report.LevelSuccess:
		p = pterm.Success
	case report.LevelWarning:
		p = pterm.Warning
	case report.LevelError:
		p = pterm.Error
	default:
		p = pterm.Info
	}
	return p.Prefix.Style.Sprint(" " + p.Prefix.Text + " ")
}

// renderDiff shows a diff as a highlighted markdown code block, falling back
// to indented plain text when glamour cannot render it
func renderDiff(diff string) string {
	logger := logging.GetLogger("output.terminal")

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		logger.Debug().Err(err).Msg("Cannot create diff renderer")
		return report.Plain.Diff(diff)
	}

	rendered, err := renderer.Render("```diff\n" + diff + "```\n")
	if err != nil {
		logger.Debug().Err(err).Msg("Cannot render diff")
		return report.Plain.Diff(diff)
	}
	return rendered
}
