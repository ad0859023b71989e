package desktop

// ExecKey is the entry holding a launcher's command line.
const ExecKey = "Exec"

// ApplyFlags merges flags into the Exec entry of every section that has one
// and returns how many entries changed. Sections without Exec are untouched.
func ApplyFlags(doc *Document, flags []string) int {
	changed := 0
	for _, s := range doc.Sections() {
		original, ok := s.Get(ExecKey)
		if !ok {
			continue
		}
		merged := MergeFlags(original, flags)
		if merged != original {
			s.Set(ExecKey, merged)
			changed++
		}
	}
	return changed
}

// Rewrite parses launcher text, applies flags to every Exec entry and
// serializes the result. It returns the new text and the number of Exec
// entries that changed.
func Rewrite(text string, flags []string) (string, int, error) {
	doc, err := Parse(text)
	if err != nil {
		return "", 0, err
	}
	changed := ApplyFlags(doc, flags)
	return Serialize(doc), changed, nil
}
