package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	Verbose    bool
}

type Runner interface {
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger, silentMode bool) Runner {
	return &runner{
		logger:     logger,
		silentMode: silentMode,
	}
}

type runner struct {
	logger     applogger.Logger
	silentMode bool
}

func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	r.logger.Debug(cmd.String())
	if command.Verbose && !r.silentMode {
		var output bytes.Buffer
		cmd.Stdout = io.MultiWriter(os.Stdout, &output)
		cmd.Stderr = os.Stderr
		err := cmd.Run()
		return output.String(), err
	}
	result, err := cmd.Output()
	return string(result), err
}
