package types

import "time"

// ProgramStatus is the outcome of processing one configured program.
type ProgramStatus string

const (
	// ProgramApplied means at least one launcher was (or would be) rewritten
	ProgramApplied ProgramStatus = "applied"
	// ProgramUnchanged means every launcher already carried the flags
	ProgramUnchanged ProgramStatus = "unchanged"
	// ProgramNotFound means none of the candidate executables resolved
	ProgramNotFound ProgramStatus = "not-found"
	// ProgramNoMatch means no launcher references the program
	ProgramNoMatch ProgramStatus = "no-match"
)

// FileStatus is the outcome for a single launcher file.
type FileStatus string

const (
	FileWritten           FileStatus = "written"
	FileUnchanged         FileStatus = "unchanged"
	FileWouldWrite        FileStatus = "would-write"
	FileSkippedMalformed  FileStatus = "skipped-malformed"
	FileSkippedUnreadable FileStatus = "skipped-unreadable"
)

// ApplyResult holds the result of the 'apply' command.
type ApplyResult struct {
	DryRun    bool            `json:"dryRun"`
	Programs  []ProgramResult `json:"programs"`
	Timestamp time.Time       `json:"timestamp"`
}

// ProgramResult describes what happened for one configured program.
type ProgramResult struct {
	Name       string        `json:"name"`
	Executable string        `json:"executable,omitempty"`
	Flags      []string      `json:"flags"`
	Status     ProgramStatus `json:"status"`
	Message    string        `json:"message,omitempty"`
	Files      []FileChange  `json:"files"`
}

// FileChange describes the rewrite of one launcher file.
type FileChange struct {
	Source  string     `json:"source"`
	Target  string     `json:"target"`
	Status  FileStatus `json:"status"`
	Backup  string     `json:"backup,omitempty"`
	Diff    string     `json:"diff,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Skipped reports whether the file was left alone because it could not be
// processed.
func (f FileChange) Skipped() bool {
	return f.Status == FileSkippedMalformed || f.Status == FileSkippedUnreadable
}

// AggregateStatus derives a program status from its files:
// - any written/would-write file → "applied"
// - otherwise → "unchanged" (skipped files are reported, not counted)
func (p *ProgramResult) AggregateStatus() ProgramStatus {
	for _, f := range p.Files {
		if f.Status == FileWritten || f.Status == FileWouldWrite {
			return ProgramApplied
		}
	}
	return ProgramUnchanged
}

// Counts returns how many launchers were changed and how many skipped across
// all programs.
func (r *ApplyResult) Counts() (changed, skipped int) {
	for _, p := range r.Programs {
		for _, f := range p.Files {
			switch {
			case f.Status == FileWritten || f.Status == FileWouldWrite:
				changed++
			case f.Skipped():
				skipped++
			}
		}
	}
	return changed, skipped
}

// InitResult holds the result of the 'init' command.
type InitResult struct {
	ConfigPath string `json:"configPath"`
	Created    bool   `json:"created"`
}
