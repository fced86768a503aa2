package provider

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
	"github.com/revsweep/tools/pkg/revsweep/application/service"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/command"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/gitlog"
)

func NewRepositoryProvider(
	repoDir string,
	runner command.Runner,
) service.RepositoryProvider {
	return &repositoryProvider{
		repoDir: repoDir,
		runner:  runner,
	}
}

type repositoryProvider struct {
	repoDir string
	runner  command.Runner
}

func (provider repositoryProvider) Exist(repository model.Repository) (bool, error) {
	_, err := os.Stat(provider.RepositoryPath(repository.ID))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (provider repositoryProvider) Clone(ctx context.Context, repository model.Repository) error {
	_, err := provider.runner.Execute(ctx, command.Command{
		Executable: "git",
		Args:       []string{"clone", repository.GitSrc, provider.RepositoryPath(repository.ID)},
		Verbose:    true,
	})
	return errors.Wrapf(err, "failed to clone repository %v", repository.ID)
}

func (provider repositoryProvider) Fetch(ctx context.Context, repository model.Repository) error {
	_, err := provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.RepositoryPath(repository.ID),
		Executable: "git",
		Args:       []string{"fetch", "--all"},
	})
	return errors.Wrapf(err, "failed to fetch repository %v", repository.ID)
}

func (provider repositoryProvider) CommitLog(
	ctx context.Context,
	repositoryID model.RepositoryID,
	branch string,
) ([]model.Commit, error) {
	if branch == "" {
		return nil, errors.Errorf("branch for repository %v is empty", repositoryID)
	}
	output, err := provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.RepositoryPath(repositoryID),
		Executable: "git",
		Args:       gitlog.LogArgs(branch),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read commit log of repository %v branch %v", repositoryID, branch)
	}
	commits, err := gitlog.ParseLog(output)
	return commits, errors.Wrapf(err, "failed to parse commit log of repository %v branch %v", repositoryID, branch)
}

func (provider repositoryProvider) DiffStat(
	ctx context.Context,
	repositoryID model.RepositoryID,
	sha, prevSHA string,
) (insertions, deletions model.FileChurn, err error) {
	output, err := provider.runner.Execute(ctx, command.Command{
		WorkDir:    provider.RepositoryPath(repositoryID),
		Executable: "git",
		Args:       []string{"diff", sha, prevSHA, "--numstat"},
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to diff %v..%v in repository %v", prevSHA, sha, repositoryID)
	}
	insertions, deletions = gitlog.ParseNumstat(output)
	return insertions, deletions, nil
}

func (provider repositoryProvider) RepositoryPath(id model.RepositoryID) string {
	return filepath.Join(provider.repoDir, id)
}
