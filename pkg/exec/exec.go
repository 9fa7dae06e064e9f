package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Unredacted is a pass-through [Redact] with no items.
var Unredacted = Redact(nil)

// CmdError carries the failing command line, its captured stderr, and the
// underlying cause. Stderr is preserved verbatim so the invoked tool's own
// diagnostics remain intact.
type CmdError struct {
	Args   string
	Stderr string
	Cause  error
}

func (ce *CmdError) Error() string {
	res := fmt.Sprintf("`%v` failed: %v", ce.Args, ce.Cause)
	if ce.Stderr != "" {
		res = fmt.Sprintf("%s: %s", res, ce.Stderr)
	}

	return res
}

func (ce *CmdError) Unwrap() error {
	return ce.Cause
}

func newCmdError(args string, cause error, stderr string) *CmdError {
	return &CmdError{Args: args, Stderr: stderr, Cause: cause}
}

// CmdOpts configures a single command invocation.
type CmdOpts struct {
	// Timeout determines how long to wait for the command to exit.
	Timeout time.Duration
	// Redactor redacts tokens from logged output.
	Redactor func(text string) string
	// SkipErrorLogging defines whether to skip logging of execution errors.
	SkipErrorLogging bool
}

var DefaultCmdOpts = CmdOpts{
	Timeout:  time.Duration(0),
	Redactor: Unredacted,
}

// Redact returns a redactor function replacing each item with asterisks.
func Redact(items []string) func(text string) string {
	return func(text string) string {
		for _, item := range items {
			text = strings.ReplaceAll(text, item, "******")
		}

		return text
	}
}

// RunCommandExt runs a prepared [exec.Cmd], logging the invocation in a
// copy-and-pasteable form, and returns trimmed stdout. Failures are returned
// as a [CmdError] with stderr attached.
func RunCommandExt(ctx context.Context, cmd *exec.Cmd, opts CmdOpts) (string, error) {
	execID := uuid.NewString()[:8]
	logCtx := slog.With("execID", execID)

	redactor := DefaultCmdOpts.Redactor
	if opts.Redactor != nil {
		redactor = opts.Redactor
	}

	args := strings.Join(cmd.Args, " ")
	logCtx.Info(redactor(args), "dir", cmd.Dir)

	var stdout bytes.Buffer

	var stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Timeout != 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := cmd.Start()
	if err != nil {
		return "", newCmdError(redactor(args), err, "")
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		logCtx.Debug(redactor(stdout.String()), "duration", time.Since(start))
		cErr := newCmdError(redactor(args), ctx.Err(), "")
		logCtx.Error(cErr.Error())

		return strings.TrimSuffix(stdout.String(), "\n"), cErr

	case err := <-done:
		if err != nil {
			logCtx.Debug(redactor(stdout.String()), "duration", time.Since(start))
			cErr := newCmdError(
				redactor(args),
				errors.New(redactor(err.Error())),
				strings.TrimSpace(redactor(stderr.String())),
			)
			if !opts.SkipErrorLogging {
				logCtx.Error(cErr.Error())
			}

			return strings.TrimSuffix(stdout.String(), "\n"), cErr
		}
	}

	logCtx.Debug(redactor(stdout.String()), "duration", time.Since(start))

	return strings.TrimSuffix(stdout.String(), "\n"), nil
}

// Command creates an [exec.Cmd] bound to ctx for use with [RunCommandExt].
// Callers set Dir and Env before running.
func Command(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, arg...)
}

// RunCommand is a convenience wrapper around [RunCommandExt].
func RunCommand(ctx context.Context, name string, opts CmdOpts, arg ...string) (string, error) {
	return RunCommandExt(ctx, exec.CommandContext(ctx, name, arg...), opts)
}
