// Package index discovers launcher files and indexes them by the executable
// their Exec lines invoke.
package index

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/arthur-debert/waylandify/pkg/paths"
	"github.com/arthur-debert/waylandify/pkg/types"
)

const execPrefix = "Exec="

// Scan lists the launcher files directly under each directory. Missing or
// unreadable directories are skipped. The result is sorted and free of
// duplicates.
func Scan(fsys types.FS, dirs []string) []string {
	logger := logging.GetLogger("index.scan")

	seen := make(map[string]struct{})
	var files []string
	for _, dir := range dirs {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			logger.Debug().Str("dir", dir).Err(err).Msg("Skipping launcher directory")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != paths.LauncherExt {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}
	sort.Strings(files)

	logger.Debug().Int("files", len(files)).Int("dirs", len(dirs)).Msg("Launcher scan complete")
	return files
}

// FindReferencing returns the files with at least one Exec line whose
// executable basename is in names. A file stops being read at its first
// matching line. Files that cannot be read as UTF-8 text are skipped.
func FindReferencing(fsys types.FS, names []string, files []string) []string {
	want := toSet(names)

	var found []string
	for _, path := range files {
		text, ok := readText(fsys, path)
		if !ok {
			continue
		}
		if eachExec(text, func(base string) bool {
			_, hit := want[base]
			return hit
		}) {
			found = append(found, path)
		}
	}
	sort.Strings(found)
	return found
}

// Index maps executable basenames to the launcher files invoking them. It is
// built once from a full scan and not maintained incrementally.
type Index struct {
	byExec map[string]map[string]struct{}
	files  []string
}

// Build reads every file once and records all the executables its Exec lines
// reference. Unreadable files are left out.
func Build(fsys types.FS, files []string) *Index {
	idx := &Index{byExec: make(map[string]map[string]struct{})}

	for _, path := range files {
		text, ok := readText(fsys, path)
		if !ok {
			continue
		}
		idx.files = append(idx.files, path)
		eachExec(text, func(base string) bool {
			set, ok := idx.byExec[base]
			if !ok {
				set = make(map[string]struct{})
				idx.byExec[base] = set
			}
			set[path] = struct{}{}
			return false
		})
	}

	logger := logging.GetLogger("index")
	logger.Debug().
		Int("files", len(idx.files)).
		Int("executables", len(idx.byExec)).
		Msg("Launcher index built")
	return idx
}

// Lookup returns, sorted, every indexed file referencing any of names.
func (i *Index) Lookup(names []string) []string {
	union := make(map[string]struct{})
	for _, name := range names {
		for path := range i.byExec[name] {
			union[path] = struct{}{}
		}
	}

	found := make([]string, 0, len(union))
	for path := range union {
		found = append(found, path)
	}
	sort.Strings(found)
	return found
}

// Files returns the readable files the index was built from.
func (i *Index) Files() []string {
	return i.files
}

// ExecBasename extracts the executable basename from an Exec value: the
// first whitespace-delimited token reduced to its last path element.
func ExecBasename(command string) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", false
	}
	return filepath.Base(fields[0]), true
}

// eachExec calls fn with the executable basename of every non-empty Exec
// line until fn returns true, and reports whether it did.
func eachExec(text string, fn func(base string) bool) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, execPrefix) {
			continue
		}
		_, command, _ := strings.Cut(line, "=")
		base, ok := ExecBasename(command)
		if !ok {
			continue
		}
		if fn(base) {
			return true
		}
	}
	return false
}

func readText(fsys types.FS, path string) (string, bool) {
	logger := logging.GetLogger("index")

	data, err := fsys.ReadFile(path)
	if err != nil {
		logger.Warn().
			Err(errors.Wrap(err, errors.ErrFileAccess, "cannot read launcher")).
			Str("path", path).
			Msg("Skipping launcher file")
		return "", false
	}
	if !utf8.Valid(data) {
		logger.Warn().Str("path", path).Msg("Skipping launcher file with invalid encoding")
		return "", false
	}
	return string(data), true
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
