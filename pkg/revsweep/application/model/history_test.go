package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revsweep/tools/pkg/revsweep/application/model"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestNewHistorySortsByTimestamp(t *testing.T) {
	t.Parallel()

	hist := model.NewHistory([]model.Commit{
		{SHA: "ccc", Timestamp: day(3)},
		{SHA: "aaa", Timestamp: day(1)},
		{SHA: "bbb", Timestamp: day(2)},
	}, nil)

	require.Equal(t, 3, hist.Len())
	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, hist.SHAs())
	assert.Equal(t, "aaa", hist.At(0).SHA)
}

func TestHistoryInfo(t *testing.T) {
	t.Parallel()

	hist := model.NewHistory([]model.Commit{
		{SHA: "aaa", Timestamp: day(1), Author: "wes", Message: "initial"},
	}, map[string][]string{"aaa": {"master"}})

	commit, ok := hist.Info("aaa")
	require.True(t, ok, "commit aaa should be found")
	assert.Equal(t, "wes", commit.Author)
	assert.Equal(t, []string{"master"}, hist.Branches("aaa"))

	_, ok = hist.Info("zzz")
	assert.False(t, ok, "unknown sha should not be found")
}

func TestHistoryRange(t *testing.T) {
	t.Parallel()

	hist := model.NewHistory([]model.Commit{
		{SHA: "aaa", Timestamp: day(1)},
		{SHA: "bbb", Timestamp: day(2)},
		{SHA: "ccc", Timestamp: day(3)},
		{SHA: "ddd", Timestamp: day(4)},
	}, nil)

	tests := map[string]struct {
		since time.Time
		until time.Time

		want []string
	}{
		"unbounded":        {want: []string{"aaa", "bbb", "ccc", "ddd"}},
		"since only":       {since: day(3), want: []string{"ccc", "ddd"}},
		"until only":       {until: day(2), want: []string{"aaa", "bbb"}},
		"both bounds":      {since: day(2), until: day(3), want: []string{"bbb", "ccc"}},
		"inclusive bounds": {since: day(1), until: day(1), want: []string{"aaa"}},
		"empty window":     {since: day(4), until: day(1), want: []string{}},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := hist.Range(tc.since, tc.until)
			assert.Equal(t, tc.want, got.SHAs())
		})
	}
}
