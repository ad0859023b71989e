// Package apply rewrites the launchers of every configured program so that
// their Exec lines carry the program's flags.
package apply

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/waylandify/pkg/backup"
	"github.com/arthur-debert/waylandify/pkg/config"
	"github.com/arthur-debert/waylandify/pkg/desktop"
	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/index"
	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/arthur-debert/waylandify/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// StageSuffix is appended to the hidden temporary file a launcher is written
// to before being renamed into place.
const StageSuffix = ".waylandify-tmp"

// Locator resolves the first installed executable among candidates.
type Locator interface {
	Locate(candidates []string) (string, bool)
}

// Options defines the options for the Apply command.
type Options struct {
	Config  *config.Config
	FS      types.FS
	Locator Locator

	// LauncherDirs are scanned for launchers, highest precedence first.
	LauncherDirs []string

	// UserDir receives every rewritten launcher.
	UserDir string

	// Backup copies existing targets aside before they are replaced. Nil
	// disables backups.
	Backup *backup.Manager

	// DryRun computes the changes and their diffs without writing anything.
	DryRun bool

	// Programs restricts the run to the named programs. Empty means all.
	Programs []string

	Clock clockwork.Clock
}

// Apply processes every selected program in configuration order.
//
// Programs whose executable is missing or that no launcher references are
// reported and skipped, as are launchers that cannot be read or parsed. A
// failure while backing up or writing stops the run immediately; the
// partial result is returned alongside the error.
func Apply(opts Options) (*types.ApplyResult, error) {
	logger := logging.GetLogger("commands.apply")
	logger.Debug().Str("command", "Apply").Bool("dryRun", opts.DryRun).Msg("Executing command")
	defer logging.LogOperationStart(logger, "apply")()

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration given")
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	programs, err := selectPrograms(opts.Config, opts.Programs)
	if err != nil {
		return nil, err
	}

	result := &types.ApplyResult{
		DryRun:    opts.DryRun,
		Programs:  []types.ProgramResult{},
		Timestamp: opts.Clock.Now(),
	}

	files := index.Scan(opts.FS, opts.LauncherDirs)
	idx := index.Build(opts.FS, files)
	logger.Info().Int("launchers", len(idx.Files())).Strs("dirs", opts.LauncherDirs).Msg("Launchers indexed")

	// staged holds what this run wrote (or would write) to each target, so a
	// later program sharing a launcher builds on the earlier flags
	staged := make(map[string]string)

	for _, p := range programs {
		pr := types.ProgramResult{
			Name:  p.Name,
			Flags: opts.Config.EffectiveFlags(p),
			Files: []types.FileChange{},
		}
		plog := logger.With().Str("program", p.Name).Logger()

		exe, ok := opts.Locator.Locate(p.Executables)
		if !ok {
			err := errors.Newf(errors.ErrExecutableNotFound,
				"none of %s found on PATH", strings.Join(p.Executables, ", "))
			plog.Warn().Err(err).Msg("Skipping program")
			pr.Status = types.ProgramNotFound
			pr.Message = err.Error()
			result.Programs = append(result.Programs, pr)
			continue
		}
		pr.Executable = exe

		matches := idx.Lookup(programNames(p, exe))
		if len(matches) == 0 {
			err := errors.Newf(errors.ErrNoMatch, "no launcher runs %s", filepath.Base(exe))
			plog.Warn().Err(err).Msg("Skipping program")
			pr.Status = types.ProgramNoMatch
			pr.Message = err.Error()
			result.Programs = append(result.Programs, pr)
			continue
		}

		for _, source := range collapse(matches, opts.LauncherDirs) {
			fc, err := processLauncher(opts, plog, staged, source, pr.Flags)
			pr.Files = append(pr.Files, fc)
			if err != nil {
				pr.Status = pr.AggregateStatus()
				result.Programs = append(result.Programs, pr)
				return result, err
			}
		}

		pr.Status = pr.AggregateStatus()
		result.Programs = append(result.Programs, pr)
	}

	changed, skipped := result.Counts()
	logger.Info().Int("changed", changed).Int("skipped", skipped).Msg("Apply finished")

	return result, nil
}

// processLauncher rewrites one source launcher into the user directory.
// Read and parse problems with the source are recorded on the returned
// FileChange; anything that would put an existing target at risk (an
// unreadable target, a failed backup or write) is returned as an error.
func processLauncher(opts Options, logger zerolog.Logger, staged map[string]string, source string, flags []string) (types.FileChange, error) {
	target := filepath.Join(opts.UserDir, filepath.Base(source))
	fc := types.FileChange{Source: source, Target: target}
	flog := logger.With().Str("source", source).Logger()

	content, err := opts.FS.ReadFile(source)
	if err != nil {
		err = errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", source)
		flog.Warn().Err(err).Msg("Skipping launcher")
		fc.Status = types.FileSkippedUnreadable
		fc.Message = err.Error()
		return fc, nil
	}

	previous, restaged := staged[target]
	input := string(content)
	if restaged {
		input = previous
	}

	rewritten, changedEntries, err := desktop.Rewrite(input, flags)
	if err != nil {
		flog.Warn().Err(err).Msg("Skipping malformed launcher")
		fc.Status = types.FileSkippedMalformed
		fc.Message = err.Error()
		return fc, nil
	}
	rewritten += "\n"

	var (
		before       string
		targetExists bool
	)
	if restaged {
		before = previous
	} else {
		existing, err := opts.FS.ReadFile(target)
		switch {
		case err == nil:
			targetExists = true
			before = string(existing)
		case stderrors.Is(err, fs.ErrNotExist):
			before = string(content)
		default:
			// An existing target we cannot read cannot be backed up either
			err = errors.Wrapf(err, errors.ErrFileAccess, "cannot read existing %s", target).
				WithDetail("path", target)
			fc.Message = err.Error()
			return fc, err
		}
	}

	if (restaged || targetExists) && before == rewritten {
		flog.Debug().Msg("Launcher already up to date")
		fc.Status = types.FileUnchanged
		return fc, nil
	}

	flog.Debug().Int("execEntries", changedEntries).Str("target", target).Msg("Launcher needs rewrite")

	if opts.DryRun {
		staged[target] = rewritten
		fc.Status = types.FileWouldWrite
		fc.Diff = lineDiff(before, rewritten)
		return fc, nil
	}

	if err := opts.FS.MkdirAll(opts.UserDir, 0755); err != nil {
		return fc, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", opts.UserDir).
			WithDetail("path", opts.UserDir)
	}

	// A target already written by this run was backed up the first time
	if targetExists && opts.Backup != nil {
		backupPath, err := opts.Backup.Create(target)
		if err != nil {
			fc.Message = err.Error()
			return fc, err
		}
		fc.Backup = backupPath
	}

	mode := launcherMode(opts.FS, source)
	if err := writeStaged(opts.FS, target, []byte(rewritten), mode); err != nil {
		fc.Message = err.Error()
		return fc, err
	}
	staged[target] = rewritten

	flog.Info().Str("target", target).Msg("Launcher written")
	fc.Status = types.FileWritten
	return fc, nil
}

// writeStaged writes data next to path under a hidden name, then renames it
// over path so readers never see a partial launcher.
func writeStaged(fsys types.FS, path string, data []byte, mode fs.FileMode) error {
	stage := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+StageSuffix)

	if err := fsys.WriteFile(stage, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", stage).WithDetail("path", path)
	}
	if err := fsys.Rename(stage, path); err != nil {
		_ = fsys.Remove(stage)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot move %s into place", path).WithDetail("path", path)
	}
	return nil
}

// selectPrograms returns the configured programs named in names, in
// configuration order, or all of them when names is empty.
func selectPrograms(cfg *config.Config, names []string) ([]config.Program, error) {
	if len(names) == 0 {
		return cfg.Programs, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := cfg.Program(n); !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown program %q", n).WithDetail("program", n)
		}
		wanted[n] = true
	}

	var out []config.Program
	for _, p := range cfg.Programs {
		if wanted[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}

// programNames returns the executable basenames launchers may use for p.
func programNames(p config.Program, resolved string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range append(append([]string{}, p.Executables...), resolved) {
		base := filepath.Base(n)
		if n == "" || seen[base] {
			continue
		}
		seen[base] = true
		names = append(names, base)
	}
	return names
}

// collapse keeps one launcher per basename since they all map to the same
// target, picking the one from the highest-precedence directory. The result
// is sorted by basename.
func collapse(files []string, dirs []string) []string {
	rank := make(map[string]int, len(dirs))
	for i, d := range dirs {
		if _, ok := rank[filepath.Clean(d)]; !ok {
			rank[filepath.Clean(d)] = i
		}
	}
	rankOf := func(path string) int {
		if r, ok := rank[filepath.Dir(path)]; ok {
			return r
		}
		return len(dirs)
	}

	best := make(map[string]string)
	for _, f := range files {
		base := filepath.Base(f)
		cur, ok := best[base]
		if !ok || rankOf(f) < rankOf(cur) {
			best[base] = f
		}
	}

	bases := make([]string, 0, len(best))
	for b := range best {
		bases = append(bases, b)
	}
	sort.Strings(bases)

	out := make([]string, len(bases))
	for i, b := range bases {
		out[i] = best[b]
	}
	return out
}

// launcherMode returns the permission bits of the source launcher, or 0644
// when they cannot be read.
func launcherMode(fsys types.FS, path string) fs.FileMode {
	info, err := fsys.Stat(path)
	if err != nil {
		return 0644
	}
	return info.Mode().Perm()
}
