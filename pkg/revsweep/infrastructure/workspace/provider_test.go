package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/command"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/workspace"
)

type fakeRunner struct {
	commands []command.Command
}

func (f *fakeRunner) Execute(_ context.Context, cmd command.Command) (string, error) {
	f.commands = append(f.commands, cmd)
	return "", nil
}

func TestSweep(t *testing.T) {
	t.Parallel()

	workspaceDir := t.TempDir()
	copyDir := filepath.Join(workspaceDir, "bench")
	require.NoError(t, os.MkdirAll(filepath.Join(copyDir, "pandas", "core"), 0o755))

	files := map[string]bool{
		"setup.py":                  false,
		"pandas/core/frame.py":      false,
		"pandas/core/frame.pyc":     true,
		"pandas/core/groupby.pyo":   true,
		"pandas/core/groupby.py":    false,
		"pandas/core/frame.pyc.bak": false,
	}
	for name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(copyDir, filepath.FromSlash(name)), []byte("x"), 0o600))
	}

	provider := workspace.NewWorkspaceProvider(workspaceDir, logger.NewTextLogger(), nil)
	err := provider.Sweep(model.Workspace{ID: "bench", SweepExtensions: []string{".pyc", ".pyo"}})
	require.NoError(t, err, "Sweep should not return an error")

	for name, swept := range files {
		_, err := os.Stat(filepath.Join(copyDir, filepath.FromSlash(name)))
		if swept {
			assert.True(t, os.IsNotExist(err), "%v should have been swept", name)
		} else {
			assert.NoError(t, err, "%v should have been kept", name)
		}
	}
}

func TestSweepNoExtensions(t *testing.T) {
	t.Parallel()

	provider := workspace.NewWorkspaceProvider(t.TempDir(), logger.NewTextLogger(), nil)
	err := provider.Sweep(model.Workspace{ID: "bench"})
	assert.NoError(t, err, "a workspace without sweep extensions should be a no-op")
}

func TestCopyDependencies(t *testing.T) {
	t.Parallel()

	workspaceDir := t.TempDir()
	copyDir := filepath.Join(workspaceDir, "bench")
	require.NoError(t, os.MkdirAll(copyDir, 0o755))

	dependencyDir := t.TempDir()
	dependency := filepath.Join(dependencyDir, "run_helper.py")
	require.NoError(t, os.WriteFile(dependency, []byte("print('hi')"), 0o755))

	provider := workspace.NewWorkspaceProvider(workspaceDir, logger.NewTextLogger(), nil)
	err := provider.CopyDependencies(model.Workspace{ID: "bench", Dependencies: []string{dependency}})
	require.NoError(t, err, "CopyDependencies should not return an error")

	copied := filepath.Join(copyDir, "run_helper.py")
	content, err := os.ReadFile(copied)
	require.NoError(t, err, "the dependency should have been copied into the working copy")
	assert.Equal(t, "print('hi')", string(content))

	info, err := os.Stat(copied)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "the file mode should be preserved")
}

func TestCopyDependenciesMissingSource(t *testing.T) {
	t.Parallel()

	provider := workspace.NewWorkspaceProvider(t.TempDir(), logger.NewTextLogger(), nil)
	err := provider.CopyDependencies(model.Workspace{
		ID:           "bench",
		Dependencies: []string{filepath.Join(t.TempDir(), "absent.py")},
	})
	require.Error(t, err, "a missing dependency should be an error")
	assert.Contains(t, err.Error(), "bench")
}

func TestMirrorClonesVerbosely(t *testing.T) {
	t.Parallel()

	workspaceDir := t.TempDir()
	runner := &fakeRunner{}
	provider := workspace.NewWorkspaceProvider(workspaceDir, logger.NewTextLogger(), runner)

	err := provider.Mirror(context.Background(),
		model.Workspace{ID: "bench"},
		model.Repository{ID: "pandas", GitSrc: "git://pandas"},
	)
	require.NoError(t, err, "Mirror should not return an error")

	require.Len(t, runner.commands, 1)
	cmd := runner.commands[0]
	assert.Equal(t, "git", cmd.Executable)
	assert.Equal(t, []string{"clone", "git://pandas", filepath.Join(workspaceDir, "bench_mirror")}, cmd.Args)
	assert.True(t, cmd.Verbose, "clone progress should stream")
}

func TestMirrorReplacesExistingTarget(t *testing.T) {
	t.Parallel()

	workspaceDir := t.TempDir()
	mirrorDir := filepath.Join(workspaceDir, "bench_mirror")
	require.NoError(t, os.MkdirAll(mirrorDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mirrorDir, "stale"), []byte("x"), 0o600))

	runner := &fakeRunner{}
	provider := workspace.NewWorkspaceProvider(workspaceDir, logger.NewTextLogger(), runner)

	err := provider.Mirror(context.Background(),
		model.Workspace{ID: "bench"},
		model.Repository{ID: "pandas", GitSrc: "git://pandas"},
	)
	require.NoError(t, err, "Mirror should not return an error")

	_, err = os.Stat(mirrorDir)
	assert.True(t, os.IsNotExist(err), "the stale mirror should be removed before cloning")
	require.Len(t, runner.commands, 1, "the mirror should be cloned anew")
}
