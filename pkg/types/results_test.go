package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramResult_AggregateStatus(t *testing.T) {
	tests := []struct {
		name  string
		files []FileChange
		want  ProgramStatus
	}{
		{"no files", nil, ProgramUnchanged},
		{"all unchanged", []FileChange{{Status: FileUnchanged}}, ProgramUnchanged},
		{"one written", []FileChange{{Status: FileUnchanged}, {Status: FileWritten}}, ProgramApplied},
		{"dry run", []FileChange{{Status: FileWouldWrite}}, ProgramApplied},
		{"only skipped", []FileChange{{Status: FileSkippedMalformed}}, ProgramUnchanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ProgramResult{Files: tt.files}
			assert.Equal(t, tt.want, p.AggregateStatus())
		})
	}
}

func TestApplyResult_Counts(t *testing.T) {
	r := &ApplyResult{Programs: []ProgramResult{
		{Files: []FileChange{{Status: FileWritten}, {Status: FileSkippedUnreadable}}},
		{Files: []FileChange{{Status: FileWouldWrite}, {Status: FileUnchanged}, {Status: FileSkippedMalformed}}},
		{Status: ProgramNotFound},
	}}

	changed, skipped := r.Counts()
	assert.Equal(t, 2, changed)
	assert.Equal(t, 2, skipped)
}
