// Package gitlog parses the output of the git commands the repository
// provider shells out to.
package gitlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
)

const prettyFormat = "::%h::%cd::%s::%an"

// LogArgs builds the argument list for a first-parent commit log of a single
// branch. The graph marker keeps only mainline commits distinguishable: with
// --graph every commit on the traversed chain starts with '*', edge
// continuation lines do not.
func LogArgs(branch string) []string {
	return []string{
		"log",
		"--graph",
		"--date=rfc2822",
		"--pretty=format:" + prettyFormat,
		"--first-parent",
		branch,
	}
}

// ParseLog parses LogArgs output into commits, newest first. Timestamps are
// normalized to UTC.
func ParseLog(output string) ([]model.Commit, error) {
	commits := make([]model.Commit, 0)
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, "*") {
			continue
		}
		parts := strings.SplitN(line, "::", 5)
		if len(parts) < 5 {
			continue
		}
		stamp, err := ParseCommitDate(parts[2])
		if err != nil {
			return nil, err
		}
		commits = append(commits, model.Commit{
			SHA:       parts[1],
			Timestamp: stamp,
			Message:   parts[3],
			Author:    parts[4],
		})
	}
	return commits, nil
}

// ParseCommitDate parses a --date=rfc2822 timestamp, discarding the zone
// offset in favor of UTC.
func ParseCommitDate(stamp string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC1123Z, strings.TrimSpace(stamp))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse commit date %q", stamp)
	}
	return parsed.UTC(), nil
}

// ParseNumstat parses `git diff --numstat` output. Binary file entries and
// malformed lines are skipped.
func ParseNumstat(output string) (insertions, deletions model.FileChurn) {
	insertions = make(model.FileChurn)
	deletions = make(model.FileChurn)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		inserted, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		deleted, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		insertions[fields[2]] = inserted
		deletions[fields[2]] = deleted
	}
	return insertions, deletions
}
