package main

import (
	"context"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

func sync(ctx context.Context, repository string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	if repository == "" {
		return dependencyContainer.History().SyncAll(ctx)
	}
	return dependencyContainer.History().Sync(ctx, repository)
}
