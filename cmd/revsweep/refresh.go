package main

import (
	"context"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

func refresh(ctx context.Context, workspace string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.Sweeper().Refresh(ctx, workspace)
}
