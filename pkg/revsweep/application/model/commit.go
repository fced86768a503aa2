package model

import (
	"sort"
	"time"
)

type Commit struct {
	SHA       string
	Timestamp time.Time
	Message   string
	Author    string
}

// History is an ordered view over the mainline commits of a repository.
// Commits are sorted by timestamp ascending and SHAs are unique.
type History struct {
	commits  []Commit
	bySHA    map[string]int
	branches map[string][]string
}

func NewHistory(commits []Commit, branches map[string][]string) History {
	sorted := make([]Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	bySHA := make(map[string]int, len(sorted))
	for i, commit := range sorted {
		bySHA[commit.SHA] = i
	}
	return History{
		commits:  sorted,
		bySHA:    bySHA,
		branches: branches,
	}
}

func (h History) Len() int {
	return len(h.commits)
}

func (h History) At(i int) Commit {
	return h.commits[i]
}

func (h History) Commits() []Commit {
	commits := make([]Commit, len(h.commits))
	copy(commits, h.commits)
	return commits
}

func (h History) SHAs() []string {
	shas := make([]string, 0, len(h.commits))
	for _, commit := range h.commits {
		shas = append(shas, commit.SHA)
	}
	return shas
}

func (h History) Info(sha string) (Commit, bool) {
	i, ok := h.bySHA[sha]
	if !ok {
		return Commit{}, false
	}
	return h.commits[i], true
}

// Branches lists the branches a commit was collected from.
func (h History) Branches(sha string) []string {
	return h.branches[sha]
}

// Range narrows the history to commits with since <= timestamp <= until.
// A zero bound leaves that side unbounded.
func (h History) Range(since, until time.Time) History {
	filtered := make([]Commit, 0, len(h.commits))
	for _, commit := range h.commits {
		if !since.IsZero() && commit.Timestamp.Before(since) {
			continue
		}
		if !until.IsZero() && commit.Timestamp.After(until) {
			continue
		}
		filtered = append(filtered, commit)
	}
	return NewHistory(filtered, h.branches)
}
