package text

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResult_Apply(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(&buf)
	require.NoError(t, err)

	result := &types.ApplyResult{
		Programs: []types.ProgramResult{
			{
				Name:       "vscode",
				Status:     types.ProgramApplied,
				Executable: "/usr/bin/code",
				Flags:      []string{"--ozone-platform=wayland"},
				Files: []types.FileChange{{
					Source: "/usr/share/applications/code.desktop",
					Target: "/home/user/.local/share/applications/code.desktop",
					Status: types.FileWritten,
					Backup: "/home/user/.local/share/waylandify/backups/backup_x/code.desktop",
				}},
			},
			{
				Name:    "brave",
				Status:  types.ProgramNotFound,
				Message: "none of brave-browser found on PATH",
			},
		},
	}
	require.NoError(t, r.RenderResult(result))

	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "no escape sequences")
	assert.Contains(t, out, "vscode  applied  (/usr/bin/code)\n")
	assert.Contains(t, out, "  flags: --ozone-platform=wayland\n")
	assert.Contains(t, out, "/usr/share/applications/code.desktop -> /home/user/.local/share/applications/code.desktop\n")
	assert.Contains(t, out, "      backup: /home/user/.local/share/waylandify/backups/backup_x/code.desktop\n")
	assert.Contains(t, out, "brave  not-found\n")
	assert.Contains(t, out, "  none of brave-browser found on PATH\n")
	assert.Contains(t, out, "1 launcher changed, 0 skipped.")
}

func TestRenderResult_DryRunDiff(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	result := &types.ApplyResult{
		DryRun: true,
		Programs: []types.ProgramResult{{
			Name:   "vscode",
			Status: types.ProgramApplied,
			Files: []types.FileChange{{
				Source: "/usr/share/applications/code.desktop",
				Target: "/home/user/.local/share/applications/code.desktop",
				Status: types.FileWouldWrite,
				Diff:   "-Exec=code\n+Exec=code --x\n",
			}},
		}},
	}
	require.NoError(t, r.RenderResult(result))

	out := buf.String()
	assert.Contains(t, out, "WARNING: Dry run: no files were changed.")
	assert.Contains(t, out, "      -Exec=code\n      +Exec=code --x\n")
	assert.Contains(t, out, "1 launcher would change, 0 skipped.")
}

func TestRenderResult_Init(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderResult(&types.InitResult{Created: true, ConfigPath: "/c/config.toml"}))
	assert.Equal(t, "SUCCESS: Created configuration at /c/config.toml\n", buf.String())
}

func TestRenderResult_Other(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderResult(struct{ N int }{3}))
	assert.Equal(t, "{N:3}\n", buf.String())
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderError(fmt.Errorf("boom")))
	assert.Equal(t, "ERROR: boom\n", buf.String())

	buf.Reset()
	err := errors.New(errors.ErrConfigInvalid, "invalid").
		WithDetail("problems", []string{"programs[0].name is required"})
	require.NoError(t, r.RenderError(err))
	assert.Contains(t, buf.String(), "ERROR: [CONFIG_INVALID] 1 problem in configuration\n")
	assert.Contains(t, buf.String(), "  - programs[0].name is required\n")
}

func TestRenderMessage(t *testing.T) {
	var buf bytes.Buffer
	r, _ := New(&buf)

	require.NoError(t, r.RenderMessage("hello"))
	assert.Equal(t, "hello\n", buf.String())
}
