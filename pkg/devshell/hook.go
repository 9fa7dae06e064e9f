package devshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/axon-cli/axon-build/pkg/builderrors"
)

// RunSetupHook executes the workspace's setup hook with an embedded POSIX
// shell interpreter, so provisioning behaves identically on hosts with no
// system shell. The hook runs under the provisioned environment in dir and
// stops at the first failing command.
func (e *Environment) RunSetupHook(ctx context.Context, script, dir string, stdout, stderr io.Writer) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(script), "setup_hook")
	if err != nil {
		return fmt.Errorf("%w: parse: %w", builderrors.ErrSetupHook, err)
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(e.Environ(os.Environ())...)),
		interp.StdIO(nil, stdout, stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", builderrors.ErrSetupHook, err)
	}

	if err := runner.Run(ctx, file); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return fmt.Errorf("%w: exit status %d", builderrors.ErrSetupHook, uint8(status))
		}

		return fmt.Errorf("%w: %w", builderrors.ErrSetupHook, err)
	}

	return nil
}
