// Package report lays out command results as lines of text. The terminal
// and text renderers share this layout and differ only in their Theme.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/types"
)

// Level classifies a line for labelling.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Theme decorates the layout.
type Theme struct {
	// Style applies the named style to s.
	Style func(name, s string) string
	// Label returns the prefix shown before errors and banners.
	Label func(level Level) string
	// Diff renders a line diff produced by a dry run.
	Diff func(diff string) string
}

// Plain is the undecorated theme.
var Plain = Theme{
	Style: func(_, s string) string { return s },
	Label: func(level Level) string {
		switch level {
		case LevelSuccess:
			return "SUCCESS:"
		case LevelWarning:
			return "WARNING:"
		case LevelError:
			return "ERROR:"
		default:
			return "INFO:"
		}
	},
	Diff: func(diff string) string { return Indent(diff, "      ") },
}

// WriteApply writes the report of an apply run.
func WriteApply(w io.Writer, r *types.ApplyResult, th Theme) error {
	var b strings.Builder

	if r.DryRun {
		fmt.Fprintf(&b, "%s %s\n\n", th.Label(LevelWarning), th.Style("DryRunBanner", "Dry run: no files were changed."))
	}

	if len(r.Programs) == 0 {
		b.WriteString(th.Style("Muted", "No programs configured.") + "\n")
	}

	for i, p := range r.Programs {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeProgram(&b, p, th)
	}

	changed, skipped := r.Counts()
	verb := "changed"
	if r.DryRun {
		verb = "would change"
	}
	summary := fmt.Sprintf("%d %s %s, %d skipped.", changed, plural(changed, "launcher", "launchers"), verb, skipped)
	fmt.Fprintf(&b, "\n%s\n", th.Style("Summary", summary))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeProgram(b *strings.Builder, p types.ProgramResult, th Theme) {
	header := th.Style("Program", p.Name) + "  " + th.Style(programStyle(p.Status), string(p.Status))
	if p.Executable != "" {
		header += "  " + th.Style("Muted", "("+p.Executable+")")
	}
	b.WriteString(header + "\n")

	if p.Message != "" {
		b.WriteString("  " + th.Style("Muted", p.Message) + "\n")
	}
	if len(p.Flags) > 0 && p.Status != types.ProgramNotFound && p.Status != types.ProgramNoMatch {
		b.WriteString("  flags: " + th.Style("Flag", strings.Join(p.Flags, " ")) + "\n")
	}

	for _, f := range p.Files {
		writeFile(b, f, th)
	}
}

func writeFile(b *strings.Builder, f types.FileChange, th Theme) {
	status := fmt.Sprintf("%-18s", string(f.Status))
	line := "  " + th.Style(fileStyle(f.Status), status) + " " + th.Style("FilePath", f.Source)
	if f.Target != f.Source && !f.Skipped() {
		line += " -> " + th.Style("FilePath", f.Target)
	}
	b.WriteString(line + "\n")

	if f.Backup != "" {
		b.WriteString("      backup: " + th.Style("FilePath", f.Backup) + "\n")
	}
	if f.Message != "" {
		b.WriteString("      " + th.Style("Muted", f.Message) + "\n")
	}
	if f.Diff != "" {
		out := th.Diff(f.Diff)
		b.WriteString(out)
		if !strings.HasSuffix(out, "\n") {
			b.WriteByte('\n')
		}
	}
}

// WriteInit writes the outcome of init.
func WriteInit(w io.Writer, r *types.InitResult, th Theme) error {
	var line string
	if r.Created {
		line = fmt.Sprintf("%s Created configuration at %s\n", th.Label(LevelSuccess), th.Style("FilePath", r.ConfigPath))
	} else {
		line = fmt.Sprintf("%s Configuration already exists at %s\n", th.Label(LevelWarning), th.Style("FilePath", r.ConfigPath))
	}
	_, err := io.WriteString(w, line)
	return err
}

// WriteError writes err and, for configuration problems, one line per
// problem.
func WriteError(w io.Writer, err error, th Theme) error {
	var b strings.Builder

	problems, _ := errors.GetErrorDetails(err)["problems"].([]string)
	if len(problems) > 0 {
		msg := fmt.Sprintf("[%s] %d %s in configuration", errors.GetErrorCode(err),
			len(problems), plural(len(problems), "problem", "problems"))
		fmt.Fprintf(&b, "%s %s\n", th.Label(LevelError), th.Style("Error", msg))
		for _, p := range problems {
			b.WriteString("  - " + p + "\n")
		}
	} else {
		fmt.Fprintf(&b, "%s %s\n", th.Label(LevelError), th.Style("Error", err.Error()))
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

// Indent prefixes every non-empty line of s.
func Indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" || l == "\n" {
			b.WriteString(l)
			continue
		}
		b.WriteString(prefix + l)
	}
	return b.String()
}

func programStyle(s types.ProgramStatus) string {
	switch s {
	case types.ProgramApplied:
		return "Success"
	case types.ProgramNotFound, types.ProgramNoMatch:
		return "Warning"
	default:
		return "Muted"
	}
}

func fileStyle(s types.FileStatus) string {
	switch s {
	case types.FileWritten, types.FileWouldWrite:
		return "Success"
	case types.FileSkippedMalformed, types.FileSkippedUnreadable:
		return "Warning"
	default:
		return "Muted"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
