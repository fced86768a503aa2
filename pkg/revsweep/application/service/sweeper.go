package service

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
)

var ErrBuildFailed = errors.New("failed to build working copy")

type WorkspaceProvider interface {
	Mirror(ctx context.Context, workspace model.Workspace, repository model.Repository) error
	Repopulate(ctx context.Context, workspace model.Workspace) error
	CheckoutForce(ctx context.Context, workspace model.Workspace, rev string) error
	CopyDependencies(workspace model.Workspace) error
	Sweep(workspace model.Workspace) error
	WorkingCopyPath(id model.WorkspaceID) string
}

type ScriptRunner interface {
	Run(ctx context.Context, dir, script string) error
}

type Sweeper interface {
	Switch(ctx context.Context, id model.WorkspaceID, rev string) error
	Refresh(ctx context.Context, id model.WorkspaceID) error
}

func NewSweeperService(
	config model.Project,
	logger applogger.Logger,
	workspaceProvider WorkspaceProvider,
	scriptRunner ScriptRunner,
) Sweeper {
	return &sweeper{
		config:            config,
		logger:            logger,
		workspaceProvider: workspaceProvider,
		scriptRunner:      scriptRunner,
		mirrored:          make(map[model.WorkspaceID]bool),
	}
}

type sweeper struct {
	config model.Project

	logger            applogger.Logger
	workspaceProvider WorkspaceProvider
	scriptRunner      ScriptRunner

	// workspaces whose mirror was already refreshed from the source in
	// this run
	mirrored map[model.WorkspaceID]bool
}

func (service sweeper) Switch(ctx context.Context, id model.WorkspaceID, rev string) error {
	workspace, repository, err := service.lookup(id)
	if err != nil {
		return err
	}
	service.logger.Info(fmt.Sprintf("switch workspace \"%v\" to revision \"%v\"...", id, rev))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()

	if workspace.AlwaysClean {
		err = service.repopulate(ctx, workspace, repository)
	} else {
		err = service.runScript(ctx, workspace, workspace.Clean, rev)
	}
	if err != nil {
		return err
	}
	err = service.workspaceProvider.CheckoutForce(ctx, workspace, rev)
	if err != nil {
		return err
	}
	err = service.workspaceProvider.CopyDependencies(workspace)
	if err != nil {
		return err
	}
	err = service.workspaceProvider.Sweep(workspace)
	if err != nil {
		return err
	}
	err = service.runScript(ctx, workspace, workspace.Build, rev)
	if err != nil {
		return fmt.Errorf("workspace %v at revision %v: %w: %w", id, rev, ErrBuildFailed, err)
	}
	return nil
}

func (service sweeper) Refresh(ctx context.Context, id model.WorkspaceID) error {
	workspace, repository, err := service.lookup(id)
	if err != nil {
		return err
	}
	service.logger.Info(fmt.Sprintf("refresh workspace \"%v\"...", id))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	return service.repopulate(ctx, workspace, repository)
}

func (service sweeper) repopulate(ctx context.Context, workspace model.Workspace, repository model.Repository) error {
	// the mirror is refreshed from the source once per run, repeated
	// repopulations reuse it
	if !service.mirrored[workspace.ID] {
		err := service.workspaceProvider.Mirror(ctx, workspace, repository)
		if err != nil {
			return err
		}
		service.mirrored[workspace.ID] = true
	}
	err := service.workspaceProvider.Repopulate(ctx, workspace)
	if err != nil {
		return err
	}
	return service.runScript(ctx, workspace, workspace.Prep, "")
}

func (service sweeper) runScript(ctx context.Context, workspace model.Workspace, script, rev string) error {
	if script == "" {
		return nil
	}
	rendered, err := service.renderScript(workspace, script, rev)
	if err != nil {
		return err
	}
	return service.scriptRunner.Run(ctx, service.workspaceProvider.WorkingCopyPath(workspace.ID), rendered)
}

type scriptVariables struct {
	Workspace string
	Revision  string
	Dir       string
	RepoDir   string
}

func (service sweeper) renderScript(workspace model.Workspace, script, rev string) (string, error) {
	scriptTemplate, err := template.New(workspace.ID).Parse(script)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse script template for workspace %v", workspace.ID)
	}
	var rendered bytes.Buffer
	err = scriptTemplate.Execute(&rendered, scriptVariables{
		Workspace: workspace.ID,
		Revision:  rev,
		Dir:       service.workspaceProvider.WorkingCopyPath(workspace.ID),
		RepoDir:   service.config.RepoSrc,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to render script template for workspace %v", workspace.ID)
	}
	return rendered.String(), nil
}

func (service sweeper) lookup(id model.WorkspaceID) (model.Workspace, model.Repository, error) {
	workspace, ok := service.config.Workspaces[id]
	if !ok {
		return model.Workspace{}, model.Repository{}, fmt.Errorf("workspace with id %v not found", id)
	}
	for _, repository := range service.config.Repositories {
		if repository.ID == workspace.Repository {
			return workspace, repository, nil
		}
	}
	return model.Workspace{}, model.Repository{}, fmt.Errorf(
		"repository with id %v for workspace %v not found", workspace.Repository, id,
	)
}
