package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/waylandify/pkg/backup"
	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/filesystem"
	"github.com/arthur-debert/waylandify/pkg/locator"
	"github.com/arthur-debert/waylandify/pkg/types"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[[programs]]
name = "vscode"
executables = ["code"]
flags = ["--ozone-platform=wayland"]

[[programs]]
name = "brave"
executables = ["brave-browser"]
flags = ["--ozone-platform=wayland"]
`

const codeLauncher = "[Desktop Entry]\nName=Code\nExec=/usr/share/code/code %F\n"

// testPaths lays every location out under one temporary root.
type testPaths struct {
	root string
}

var _ types.Pather = testPaths{}

func (p testPaths) ConfigDir() string           { return filepath.Join(p.root, "config") }
func (p testPaths) ConfigFile() string          { return filepath.Join(p.ConfigDir(), "config.toml") }
func (p testPaths) BackupDir() string           { return filepath.Join(p.root, "data", "backups") }
func (p testPaths) UserApplicationsDir() string { return filepath.Join(p.root, "user", "applications") }
func (p testPaths) SystemDir() string           { return filepath.Join(p.root, "system", "applications") }
func (p testPaths) LauncherDirs() []string {
	return []string{p.UserApplicationsDir(), p.SystemDir()}
}

type testEnv struct {
	paths  testPaths
	clock  *clockwork.FakeClock
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "xdg-state"))

	env := &testEnv{
		paths: testPaths{root: root},
		clock: clockwork.NewFakeClockAt(time.Date(2024, 3, 9, 14, 5, 7, 123456000, time.UTC)),
	}
	require.NoError(t, os.MkdirAll(env.paths.SystemDir(), 0755))
	return env
}

func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(e.paths.ConfigDir(), 0755))
	require.NoError(t, os.WriteFile(e.paths.ConfigFile(), []byte(content), 0644))
}

func (e *testEnv) writeSystemLauncher(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(e.paths.SystemDir(), name), []byte(content), 0644))
}

func (e *testEnv) run(args ...string) error {
	installed := map[string]string{"code": "/usr/bin/code"}
	h := host{
		fs: filesystem.NewOS(),
		locator: locator.NewWithLookPath(func(name string) (string, error) {
			if p, ok := installed[name]; ok {
				return p, nil
			}
			return "", fmt.Errorf("%s: not found", name)
		}),
		paths: func() (types.Pather, error) { return e.paths, nil },
		clock: e.clock,
	}

	cmd := newRootCmd(h)
	cmd.SetOut(&e.stdout)
	cmd.SetErr(&e.stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestInitCmd(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("init"))
	assert.Contains(t, env.stdout.String(), "Created configuration at "+env.paths.ConfigFile())
	assert.FileExists(t, env.paths.ConfigFile())

	env.stdout.Reset()
	require.NoError(t, env.run("init"))
	assert.Contains(t, env.stdout.String(), "Configuration already exists at")
}

func TestApplyCmd_MissingConfig(t *testing.T) {
	env := newTestEnv(t)

	err := env.run("apply")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.Contains(t, env.stderr.String(), "ERROR:")
	assert.Contains(t, env.stderr.String(), "waylandify init")
}

func TestApplyCmd_InvalidConfigListsProblems(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "[[programs]]\nexecutables = []\n")

	err := env.run("apply")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	assert.Contains(t, env.stderr.String(), "problems in configuration")
	assert.Contains(t, env.stderr.String(), "  - programs[0].name is required")
}

func TestApplyCmd_RewritesLaunchers(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)
	env.writeSystemLauncher(t, "code.desktop", codeLauncher)

	require.NoError(t, env.run("apply"))

	target := filepath.Join(env.paths.UserApplicationsDir(), "code.desktop")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "[Desktop Entry]\nName=Code\nExec=/usr/share/code/code --ozone-platform=wayland %F\n", string(data))

	system, err := os.ReadFile(filepath.Join(env.paths.SystemDir(), "code.desktop"))
	require.NoError(t, err)
	assert.Equal(t, codeLauncher, string(system), "system launcher untouched")

	out := env.stdout.String()
	assert.Contains(t, out, "vscode")
	assert.Contains(t, out, "written")
	assert.Contains(t, out, "not-found")
	assert.Contains(t, out, "1 launcher changed, 0 skipped.")

	// second run finds nothing to do
	env.stdout.Reset()
	require.NoError(t, env.run("apply"))
	assert.Contains(t, env.stdout.String(), "unchanged")
	assert.Contains(t, env.stdout.String(), "0 launchers changed")
}

func TestApplyCmd_DryRun(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)
	env.writeSystemLauncher(t, "code.desktop", codeLauncher)

	require.NoError(t, env.run("apply", "--dry-run", "vscode"))

	assert.NoDirExists(t, env.paths.UserApplicationsDir())
	out := env.stdout.String()
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "would-write")
	assert.Contains(t, out, "+Exec=/usr/share/code/code --ozone-platform=wayland %F")
	assert.NotContains(t, out, "brave", "program filter applies")
}

func TestApplyCmd_BackupAndNoBackup(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)
	env.writeSystemLauncher(t, "code.desktop", codeLauncher)

	target := filepath.Join(env.paths.UserApplicationsDir(), "code.desktop")
	require.NoError(t, os.MkdirAll(env.paths.UserApplicationsDir(), 0755))
	require.NoError(t, os.WriteFile(target, []byte("[Desktop Entry]\nExec=code\n"), 0644))

	require.NoError(t, env.run("apply", "--no-backup"))
	assert.NoDirExists(t, env.paths.BackupDir())

	require.NoError(t, os.WriteFile(target, []byte("[Desktop Entry]\nExec=code\n"), 0644))
	require.NoError(t, env.run("apply"))

	backupFile := filepath.Join(env.paths.BackupDir(),
		backup.DirPrefix+backup.Timestamp(env.clock.Now()), "code.desktop")
	data, err := os.ReadFile(backupFile)
	require.NoError(t, err)
	assert.Equal(t, "[Desktop Entry]\nExec=code\n", string(data))
	assert.Contains(t, env.stdout.String(), "backup: "+backupFile)
}

func TestApplyCmd_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)
	env.writeSystemLauncher(t, "code.desktop", codeLauncher)

	require.NoError(t, env.run("apply", "--format", "json", "--dry-run"))

	var result types.ApplyResult
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &result))
	assert.True(t, result.DryRun)
	require.Len(t, result.Programs, 2)
	assert.Equal(t, types.ProgramApplied, result.Programs[0].Status)
	require.Len(t, result.Programs[0].Files, 1)
	assert.Equal(t, types.FileWouldWrite, result.Programs[0].Files[0].Status)
	assert.Equal(t, types.ProgramNotFound, result.Programs[1].Status)
}

func TestApplyCmd_JSONError(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)

	err := env.run("apply", "--format", "json", "chromium")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &obj))
	assert.Equal(t, string(errors.ErrInvalidInput), obj["code"])
	assert.Empty(t, env.stderr.String())
}

func TestApplyCmd_BadFormat(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)

	err := env.run("apply", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func TestProgramNamesCompletion(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testConfig)

	opts := &rootOptions{host: host{paths: func() (types.Pather, error) { return env.paths, nil }}}
	names, _ := programNamesCompletion(opts)(nil, []string{"vscode"}, "")
	assert.Equal(t, []string{"brave"}, names)
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run("version"))
	assert.Contains(t, env.stdout.String(), "waylandify version dev")
}

func TestCompletionCmd(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run("completion", "bash"))
	assert.Contains(t, env.stdout.String(), "waylandify")

	assert.Error(t, env.run("completion", "tcsh"))
}

func TestTopics(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run("topics"))
	out := env.stdout.String()
	assert.Contains(t, out, "Available help topics:")
	assert.Contains(t, out, "config")
	assert.Contains(t, out, "--dry-run")

	env.stdout.Reset()
	require.NoError(t, env.run("help", "--dry-run"))
	assert.Contains(t, env.stdout.String(), "diff")
}

func TestVersionFlag(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run("--version"))
	assert.Contains(t, env.stdout.String(), "waylandify version dev (commit unknown, built unknown)")
}
