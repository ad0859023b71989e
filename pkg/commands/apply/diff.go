package apply

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders a line-oriented diff of oldText against newText, each line
// prefixed with "-", "+" or " ". Identical inputs give an empty string.
func lineDiff(oldText, newText string) string {
	dmp := diffmatchpatch.New()

	// Line mode gives whole-line hunks instead of character edits
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	diffs = dmp.DiffCleanupSemantic(diffs)

	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		return ""
	}

	var b strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			b.WriteString(prefix)
			b.WriteString(strings.TrimSuffix(l, "\n"))
			b.WriteByte('\n')
		}
	}
	return b.String()
}
