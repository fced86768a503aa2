package model

import "time"

// FileChurn maps a path to a line count.
type FileChurn map[string]int

// CommitChurn holds per-file insertions and deletions a commit introduced
// relative to its mainline predecessor.
type CommitChurn struct {
	SHA        string
	Timestamp  time.Time
	Insertions FileChurn
	Deletions  FileChurn
}

// Total sums insertions and deletions over all files.
func (c CommitChurn) Total() int {
	total := 0
	for _, count := range c.Insertions {
		total += count
	}
	for _, count := range c.Deletions {
		total += count
	}
	return total
}

// Churn is per-commit churn in history order.
type Churn []CommitChurn

func (c Churn) TotalByCommit() map[string]int {
	totals := make(map[string]int, len(c))
	for _, commit := range c {
		totals[commit.SHA] = commit.Total()
	}
	return totals
}

// TotalByDate groups commit totals by the UTC calendar day of the commit.
func (c Churn) TotalByDate() map[time.Time]int {
	totals := make(map[time.Time]int)
	for _, commit := range c {
		day := commit.Timestamp.UTC().Truncate(24 * time.Hour)
		totals[day] += commit.Total()
	}
	return totals
}
