// Package locator resolves candidate program names to an installed binary.
package locator

import (
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/waylandify/pkg/logging"
)

// LookPathFunc resolves a name against the search path, with the semantics
// of exec.LookPath.
type LookPathFunc func(name string) (string, error)

// Locator finds the first candidate that resolves on the search path.
type Locator struct {
	lookPath LookPathFunc
}

// New returns a Locator backed by exec.LookPath.
func New() *Locator {
	return &Locator{lookPath: exec.LookPath}
}

// NewWithLookPath returns a Locator using a custom lookup, mostly for tests.
func NewWithLookPath(fn LookPathFunc) *Locator {
	return &Locator{lookPath: fn}
}

// Locate tries each candidate in order and returns the absolute path of the
// first one found. Not finding anything is an ordinary outcome and reported
// through the boolean, not an error.
func (l *Locator) Locate(candidates []string) (string, bool) {
	logger := logging.GetLogger("locator")

	for _, name := range candidates {
		if name == "" {
			continue
		}
		path, err := l.lookPath(name)
		if err != nil {
			logger.Trace().Str("candidate", name).Err(err).Msg("Candidate not on PATH")
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			logger.Debug().Str("candidate", name).Err(err).Msg("Cannot make path absolute")
			continue
		}
		logger.Debug().Str("candidate", name).Str("path", abs).Msg("Executable found")
		return abs, true
	}
	return "", false
}
