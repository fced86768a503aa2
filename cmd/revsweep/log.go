package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
	"github.com/revsweep/tools/pkg/revsweep/infrastructure/dependency"
)

type logOptions struct {
	repository string
	since      string
	until      string
	asJSON     bool
}

func printLog(ctx context.Context, options logOptions) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	since, err := parseBound(options.since)
	if err != nil {
		return err
	}
	until, err := parseBound(options.until)
	if err != nil {
		return err
	}
	hist, err := dependencyContainer.History().Log(ctx, options.repository)
	if err != nil {
		return err
	}
	hist = hist.Range(since, until)
	if options.asJSON {
		return printLogJSON(hist)
	}
	for _, commit := range hist.Commits() {
		fmt.Printf("%v  %v  %v  %v\n",
			commit.SHA,
			commit.Timestamp.Format(time.RFC3339),
			commit.Author,
			commit.Message,
		)
	}
	return nil
}

type commitDTO struct {
	SHA       string    `json:"sha"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Branches  []string  `json:"branches,omitempty"`
}

func printLogJSON(hist model.History) error {
	commits := make([]commitDTO, 0, hist.Len())
	for _, commit := range hist.Commits() {
		commits = append(commits, commitDTO{
			SHA:       commit.SHA,
			Timestamp: commit.Timestamp,
			Message:   commit.Message,
			Author:    commit.Author,
			Branches:  hist.Branches(commit.SHA),
		})
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(commits)
}

func parseBound(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	bound, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse time bound %q", value)
	}
	return bound, nil
}
