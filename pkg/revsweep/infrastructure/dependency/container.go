package dependency

import (
	"context"
	"errors"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
	"github.com/revsweep/tools/pkg/revsweep/application/service"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/command"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/provider"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/script"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/workspace"
)

var dependencyContainer = struct{}{}

type Container interface {
	History() service.History
	Sweeper() service.Sweeper
}

func NewDependencyContainer(
	logger applogger.Logger,
	projectConfig model.Project,
	silentMode bool,
) Container {
	runner := command.NewCommandRunner(logger, silentMode)
	repositoryProvider := provider.NewRepositoryProvider(projectConfig.RepoSrc, runner)
	workspaceProvider := workspace.NewWorkspaceProvider(projectConfig.WorkspaceSrc, logger, runner)
	scriptRunner := script.NewScriptRunner(logger, silentMode)
	historyService := service.NewHistoryService(projectConfig, logger, repositoryProvider)
	sweeperService := service.NewSweeperService(projectConfig, logger, workspaceProvider, scriptRunner)

	return &container{
		history: historyService,
		sweeper: sweeperService,
	}
}

type container struct {
	history service.History
	sweeper service.Sweeper
}

func (c *container) History() service.History {
	return c.history
}

func (c *container) Sweeper() service.Sweeper {
	return c.sweeper
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainer)
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainer, c)
}
