package desktop

import (
	"strings"

	"github.com/arthur-debert/waylandify/pkg/errors"
)

const (
	shebangPrefix = "#!"
	commentPrefix = "#"
	altCommentMark = ";"
	byteOrderMark = "\ufeff"
)

// Parse reads launcher text into a Document.
//
// A leading shebang line is dropped. Comments (# or ;) and blank lines are
// kept in place; values are stored literally, without any interpolation.
// Structural problems (an entry before the first header, a broken or
// duplicate header, an empty key) fail with ErrMalformedEntry.
func Parse(text string) (*Document, error) {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if strings.HasPrefix(text, shebangPrefix) {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			text = ""
		}
	}

	doc := NewDocument()
	var current *Section

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		switch {
		case trimmed == "":
			doc.add(current, line{kind: lineBlank})

		case strings.HasPrefix(trimmed, commentPrefix), strings.HasPrefix(trimmed, altCommentMark):
			doc.add(current, line{kind: lineComment, text: trimmed})

		case isHeader(trimmed):
			name := trimmed[1 : len(trimmed)-1]
			if strings.TrimSpace(name) == "" {
				return nil, errors.Newf(errors.ErrMalformedEntry,
					"line %d: empty section header", lineNo).WithDetail("line", lineNo)
			}
			if doc.Section(name) != nil {
				return nil, errors.Newf(errors.ErrMalformedEntry,
					"line %d: duplicate section %q", lineNo, name).
					WithDetail("line", lineNo).
					WithDetail("section", name)
			}
			s, err := doc.AddSection(name)
			if err != nil {
				return nil, err
			}
			current = s

		case strings.Contains(trimmed, "="):
			if current == nil {
				return nil, errors.Newf(errors.ErrMalformedEntry,
					"line %d: entry outside of any section", lineNo).WithDetail("line", lineNo)
			}
			key, value, _ := strings.Cut(trimmed, "=")
			key = strings.TrimSpace(key)
			if key == "" {
				return nil, errors.Newf(errors.ErrMalformedEntry,
					"line %d: empty key", lineNo).WithDetail("line", lineNo)
			}
			current.Set(key, strings.TrimSpace(value))

		case strings.HasPrefix(trimmed, "["):
			return nil, errors.Newf(errors.ErrMalformedEntry,
				"line %d: unterminated section header %q", lineNo, trimmed).WithDetail("line", lineNo)

		default:
			if current == nil {
				return nil, errors.Newf(errors.ErrMalformedEntry,
					"line %d: content outside of any section", lineNo).WithDetail("line", lineNo)
			}
			current.addLine(line{kind: lineRaw, text: trimmed})
		}
	}

	return doc, nil
}

// Serialize writes the document back to text: preamble comments, then each
// section as a [Name] header followed by its lines, entries rendered as
// Key=Value. Surrounding whitespace of the result is trimmed.
func Serialize(d *Document) string {
	var b strings.Builder

	writeLines := func(lines []line, s *Section) {
		for _, l := range lines {
			switch l.kind {
			case lineEntry:
				b.WriteString(l.key)
				b.WriteByte('=')
				b.WriteString(s.values[l.key])
			case lineComment, lineRaw:
				b.WriteString(l.text)
			}
			b.WriteByte('\n')
		}
	}

	writeLines(d.preamble, nil)
	for _, s := range d.sections {
		b.WriteByte('[')
		b.WriteString(s.name)
		b.WriteString("]\n")
		writeLines(s.lines, s)
	}

	return strings.TrimSpace(b.String())
}

func (d *Document) add(current *Section, l line) {
	if current == nil {
		d.preamble = append(d.preamble, l)
		return
	}
	current.addLine(l)
}

func isHeader(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']'
}
