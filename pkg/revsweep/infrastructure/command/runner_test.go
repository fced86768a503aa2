package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/revsweep/tools/pkg/revsweep/infrastructure/command"
)

func TestExecute(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		silentMode bool
		verbose    bool
	}{
		"captured":             {},
		"verbose streams":      {verbose: true},
		"verbose under silent": {verbose: true, silentMode: true},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			runner := command.NewCommandRunner(logger.NewTextLogger(), tc.silentMode)
			output, err := runner.Execute(context.Background(), command.Command{
				Executable: "echo",
				Args:       []string{"hi"},
				Verbose:    tc.verbose,
			})
			require.NoError(t, err, "Execute should not return an error")
			assert.Equal(t, "hi\n", output, "output should be returned in every mode")
		})
	}
}

func TestExecuteWorkDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runner := command.NewCommandRunner(logger.NewTextLogger(), true)
	output, err := runner.Execute(context.Background(), command.Command{
		WorkDir:    dir,
		Executable: "pwd",
	})
	require.NoError(t, err, "Execute should not return an error")
	assert.Contains(t, output, dir)
}

func TestExecuteEmptyExecutable(t *testing.T) {
	t.Parallel()

	runner := command.NewCommandRunner(logger.NewTextLogger(), true)
	_, err := runner.Execute(context.Background(), command.Command{})
	require.Error(t, err, "an empty executable should be an error")
}
