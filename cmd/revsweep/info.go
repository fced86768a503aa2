package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

func printInfo(ctx context.Context, repository, rev string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	commit, branches, err := dependencyContainer.History().Info(ctx, repository, rev)
	if err != nil {
		return err
	}
	fmt.Printf("sha:      %v\n", commit.SHA)
	fmt.Printf("date:     %v\n", commit.Timestamp.Format(time.RFC3339))
	fmt.Printf("author:   %v\n", commit.Author)
	fmt.Printf("message:  %v\n", commit.Message)
	fmt.Printf("branches: %v\n", strings.Join(branches, ", "))
	return nil
}
