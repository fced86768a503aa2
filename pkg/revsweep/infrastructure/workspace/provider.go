package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
	"github.com/revsweep/tools/pkg/revsweep/application/service"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/command"
)

const mirrorSuffix = "_mirror"

func NewWorkspaceProvider(
	workspaceDir string,
	logger applogger.Logger,
	runner command.Runner,
) service.WorkspaceProvider {
	return &workspaceProvider{
		workspaceDir: workspaceDir,
		logger:       logger,
		runner:       runner,
	}
}

type workspaceProvider struct {
	workspaceDir string
	logger       applogger.Logger
	runner       command.Runner
}

func (provider workspaceProvider) Mirror(ctx context.Context, workspace model.Workspace, repository model.Repository) error {
	err := provider.cloneReplacing(ctx, repository.GitSrc, provider.mirrorPath(workspace.ID))
	return errors.Wrapf(err, "failed to mirror repository %v for workspace %v", repository.ID, workspace.ID)
}

func (provider workspaceProvider) Repopulate(ctx context.Context, workspace model.Workspace) error {
	err := provider.cloneReplacing(ctx, provider.mirrorPath(workspace.ID), provider.WorkingCopyPath(workspace.ID))
	return errors.Wrapf(err, "failed to repopulate working copy of workspace %v", workspace.ID)
}

func (provider workspaceProvider) CheckoutForce(ctx context.Context, workspace model.Workspace, rev string) error {
	if rev == "" {
		return errors.Errorf("revision for workspace %v is empty", workspace.ID)
	}
	// detached checkout always reports on stderr, keep it out of the output
	_, err := provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.WorkingCopyPath(workspace.ID),
		Executable: "git",
		Args:       []string{"checkout", "-f", rev},
	})
	return errors.Wrapf(err, "failed to checkout workspace %v at %v", workspace.ID, rev)
}

func (provider workspaceProvider) CopyDependencies(workspace model.Workspace) error {
	for _, dependency := range workspace.Dependencies {
		err := provider.copyFile(dependency, provider.WorkingCopyPath(workspace.ID))
		if err != nil {
			return errors.Wrapf(err, "failed to copy dependency %v to workspace %v", dependency, workspace.ID)
		}
	}
	return nil
}

func (provider workspaceProvider) Sweep(workspace model.Workspace) error {
	if len(workspace.SweepExtensions) == 0 {
		return nil
	}
	extensions := make(map[string]struct{}, len(workspace.SweepExtensions))
	for _, extension := range workspace.SweepExtensions {
		extensions[extension] = struct{}{}
	}
	sweep := make([]string, 0)
	root := provider.WorkingCopyPath(workspace.ID)
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if _, ok := extensions[filepath.Ext(path)]; ok {
			sweep = append(sweep, path)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to sweep workspace %v", workspace.ID)
	}
	for _, path := range sweep {
		// files may vanish between walk and unlink
		removeErr := os.Remove(path)
		if removeErr != nil {
			provider.logger.Debug("failed to remove " + path)
		}
	}
	return nil
}

func (provider workspaceProvider) WorkingCopyPath(id model.WorkspaceID) string {
	return filepath.Join(provider.workspaceDir, id)
}

func (provider workspaceProvider) mirrorPath(id model.WorkspaceID) string {
	return filepath.Join(provider.workspaceDir, id+mirrorSuffix)
}

func (provider workspaceProvider) cloneReplacing(ctx context.Context, source, target string) error {
	err := os.MkdirAll(provider.workspaceDir, 0o755)
	if err != nil {
		return err
	}
	if _, err = os.Stat(target); err == nil {
		provider.logger.Debug("removing " + target)
		err = os.RemoveAll(target)
		if err != nil {
			return err
		}
	}
	_, err = provider.runner.Execute(ctx, command.Command{
		Executable: "git",
		Args:       []string{"clone", source, target},
		Verbose:    true,
	})
	return err
}

func (provider workspaceProvider) copyFile(source, targetDir string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(targetDir, filepath.Base(source)), content, info.Mode().Perm())
}
