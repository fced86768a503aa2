package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

type churnOptions struct {
	repository string
	byDate     bool
	omitSHAs   []string
	omitPaths  []string
}

func printChurn(ctx context.Context, options churnOptions) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	churn, err := dependencyContainer.History().Churn(ctx, options.repository, options.omitSHAs, options.omitPaths)
	if err != nil {
		return err
	}
	if options.byDate {
		totals := churn.TotalByDate()
		days := make([]time.Time, 0, len(totals))
		for day := range totals {
			days = append(days, day)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		for _, day := range days {
			fmt.Printf("%v  %v\n", day.Format("2006-01-02"), totals[day])
		}
		return nil
	}
	for _, commit := range churn {
		fmt.Printf("%v  %v\n", commit.SHA, commit.Total())
	}
	return nil
}
