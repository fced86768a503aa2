package script

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/revsweep/tools/pkg/revsweep/application/service"
)

// NewScriptRunner executes multi-line shell scripts with a built-in
// interpreter, so prep/build/clean hooks behave the same on every platform.
func NewScriptRunner(logger applogger.Logger, silentMode bool) service.ScriptRunner {
	return &runner{
		logger:     logger,
		silentMode: silentMode,
	}
}

type runner struct {
	logger     applogger.Logger
	silentMode bool
}

func (r runner) Run(ctx context.Context, dir, script string) error {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil
	}
	r.logger.Debug("run script in " + dir + "\n" + script)
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return errors.Wrap(err, "failed to parse script")
	}
	var stdout, stderr io.Writer = os.Stdout, os.Stderr
	if r.silentMode {
		stdout, stderr = io.Discard, io.Discard
	}
	sh, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create script interpreter")
	}
	err = sh.Run(ctx, prog)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return errors.Wrapf(err, "script exited with status %d", status)
		}
		return errors.Wrap(err, "failed to run script")
	}
	return nil
}
