package desktop

import (
	"github.com/arthur-debert/waylandify/pkg/errors"
)

type lineKind int

const (
	lineEntry lineKind = iota
	lineComment
	lineBlank
	lineRaw
)

// line is one positional slot of a section or of the preamble. Entry lines
// carry only their key; the value lives in the section's map so that
// re-assignment keeps the original position.
type line struct {
	kind lineKind
	key  string
	text string
}

// Section is a named group of key/value entries. Keys are case-sensitive and
// keep their insertion order.
type Section struct {
	name   string
	lines  []line
	values map[string]string
}

func newSection(name string) *Section {
	return &Section{name: name, values: make(map[string]string)}
}

// Name returns the section name as written between the brackets.
func (s *Section) Name() string {
	return s.name
}

// Get returns the value of key and whether it exists.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is set in the section.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set assigns value to key. An existing key keeps its position, a new key is
// appended after the last entry.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.lines = append(s.lines, line{kind: lineEntry, key: key})
	}
	s.values[key] = value
}

// Keys returns the keys in declaration order.
func (s *Section) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for _, l := range s.lines {
		if l.kind == lineEntry {
			keys = append(keys, l.key)
		}
	}
	return keys
}

// Len returns the number of entries.
func (s *Section) Len() int {
	return len(s.values)
}

func (s *Section) addLine(l line) {
	s.lines = append(s.lines, l)
}

// Document is the in-memory model of a launcher file: ordered sections with
// ordered entries, plus the comments and blank lines found around them.
type Document struct {
	preamble []line
	sections []*Section
	byName   map[string]*Section
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{byName: make(map[string]*Section)}
}

// Sections returns the sections in order of first appearance.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Section returns the named section or nil.
func (d *Document) Section(name string) *Section {
	return d.byName[name]
}

// AddSection appends a new section. Section names are unique within a
// document.
func (d *Document) AddSection(name string) (*Section, error) {
	if name == "" {
		return nil, errors.New(errors.ErrMalformedEntry, "section name cannot be empty")
	}
	if _, exists := d.byName[name]; exists {
		return nil, errors.Newf(errors.ErrMalformedEntry, "duplicate section %q", name).
			WithDetail("section", name)
	}
	s := newSection(name)
	d.sections = append(d.sections, s)
	d.byName[name] = s
	return s, nil
}

// String serializes the document. See Serialize.
func (d *Document) String() string {
	return Serialize(d)
}
