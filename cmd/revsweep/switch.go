package main

import (
	"context"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

func switchRevision(ctx context.Context, workspace, rev string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.Sweeper().Switch(ctx, workspace, rev)
}
