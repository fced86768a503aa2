package service

import (
	"context"
	"fmt"
	"time"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
)

type RepositoryProvider interface {
	Exist(repository model.Repository) (bool, error)
	Clone(ctx context.Context, repository model.Repository) error
	Fetch(ctx context.Context, repository model.Repository) error
	CommitLog(ctx context.Context, repositoryID model.RepositoryID, branch string) ([]model.Commit, error)
	DiffStat(ctx context.Context, repositoryID model.RepositoryID, sha, prevSHA string) (insertions, deletions model.FileChurn, err error)
	RepositoryPath(id model.RepositoryID) string
}

type History interface {
	Sync(ctx context.Context, id model.RepositoryID) error
	SyncAll(ctx context.Context) error
	Log(ctx context.Context, id model.RepositoryID) (model.History, error)
	Churn(ctx context.Context, id model.RepositoryID, omitSHAs, omitPaths []string) (model.Churn, error)
	Info(ctx context.Context, id model.RepositoryID, sha string) (model.Commit, []string, error)
}

func NewHistoryService(
	config model.Project,
	logger applogger.Logger,
	repositoryProvider RepositoryProvider,
) History {
	return &history{
		config:             config,
		logger:             logger,
		repositoryProvider: repositoryProvider,
	}
}

type history struct {
	config model.Project

	logger             applogger.Logger
	repositoryProvider RepositoryProvider
}

func (service history) Sync(ctx context.Context, id model.RepositoryID) error {
	repository, err := service.repositoryByID(id)
	if err != nil {
		return err
	}
	return service.sync(ctx, repository)
}

func (service history) SyncAll(ctx context.Context) error {
	return service.iterateRepositories(func(repository model.Repository) error {
		return service.sync(ctx, repository)
	})
}

func (service history) Log(ctx context.Context, id model.RepositoryID) (model.History, error) {
	repository, err := service.repositoryByID(id)
	if err != nil {
		return model.History{}, err
	}
	known := make(map[string]struct{})
	branches := make(map[string][]string)
	commits := make([]model.Commit, 0)
	for _, branch := range repository.Branches {
		entries, err := service.repositoryProvider.CommitLog(ctx, repository.ID, branch)
		if err != nil {
			return model.History{}, err
		}
		// entries come newest first, walking the first parent only
		seenStamps := make(map[time.Time]struct{}, len(entries))
		for _, commit := range entries {
			if _, duplicate := seenStamps[commit.Timestamp]; duplicate {
				continue
			}
			seenStamps[commit.Timestamp] = struct{}{}
			if _, ok := known[commit.SHA]; ok {
				// first commit shared with an earlier branch is the common
				// ancestor, the rest of this branch is already collected
				branches[commit.SHA] = append(branches[commit.SHA], branch)
				break
			}
			known[commit.SHA] = struct{}{}
			branches[commit.SHA] = append(branches[commit.SHA], branch)
			commits = append(commits, commit)
		}
	}
	return model.NewHistory(commits, branches), nil
}

func (service history) Churn(ctx context.Context, id model.RepositoryID, omitSHAs, omitPaths []string) (model.Churn, error) {
	hist, err := service.Log(ctx, id)
	if err != nil {
		return nil, err
	}
	omitSHA := make(map[string]struct{}, len(omitSHAs))
	for _, sha := range omitSHAs {
		omitSHA[sha] = struct{}{}
	}
	churn := make(model.Churn, 0, hist.Len())
	for i := 1; i < hist.Len(); i++ {
		commit := hist.At(i)
		if _, omitted := omitSHA[commit.SHA]; omitted {
			continue
		}
		insertions, deletions, err := service.repositoryProvider.DiffStat(ctx, id, commit.SHA, hist.At(i-1).SHA)
		if err != nil {
			return nil, err
		}
		dropPaths(insertions, omitPaths)
		dropPaths(deletions, omitPaths)
		churn = append(churn, model.CommitChurn{
			SHA:        commit.SHA,
			Timestamp:  commit.Timestamp,
			Insertions: insertions,
			Deletions:  deletions,
		})
	}
	return churn, nil
}

func (service history) Info(ctx context.Context, id model.RepositoryID, sha string) (model.Commit, []string, error) {
	hist, err := service.Log(ctx, id)
	if err != nil {
		return model.Commit{}, nil, err
	}
	commit, ok := hist.Info(sha)
	if !ok {
		return model.Commit{}, nil, fmt.Errorf("commit %v not found in repository %v", sha, id)
	}
	return commit, hist.Branches(sha), nil
}

func (service history) sync(ctx context.Context, repository model.Repository) error {
	service.logger.Info(fmt.Sprintf("sync repository \"%v\"...", repository.ID))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()

	err := service.cloneIfNotExist(ctx, repository)
	if err != nil {
		return err
	}
	return service.repositoryProvider.Fetch(ctx, repository)
}

func (service history) cloneIfNotExist(ctx context.Context, repository model.Repository) error {
	exist, err := service.repositoryProvider.Exist(repository)
	if err != nil {
		return err
	}
	if !exist {
		return service.repositoryProvider.Clone(ctx, repository)
	}
	return nil
}

func (service history) repositoryByID(id model.RepositoryID) (model.Repository, error) {
	for _, repository := range service.config.Repositories {
		if repository.ID == id {
			return repository, nil
		}
	}
	return model.Repository{}, fmt.Errorf("repository with id %v not found", id)
}

func (service history) iterateRepositories(f func(repository model.Repository) error) error {
	for _, repository := range service.config.Repositories {
		err := f(repository)
		if err != nil {
			return err
		}
	}
	return nil
}

func dropPaths(churn model.FileChurn, paths []string) {
	for _, path := range paths {
		delete(churn, path)
	}
}
