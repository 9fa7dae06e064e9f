package exec_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-cli/axon-build/pkg/exec"
)

func TestRunCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.RunCommand(t.Context(), "sh", exec.CmdOpts{}, "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunCommandFailureKeepsStderr(t *testing.T) {
	t.Parallel()

	opts := exec.CmdOpts{SkipErrorLogging: true}

	_, err := exec.RunCommand(t.Context(), "sh", opts, "-c", "echo oops >&2; exit 1")
	require.Error(t, err)

	cmdErr := &exec.CmdError{}
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "oops", cmdErr.Stderr)
	assert.Contains(t, err.Error(), "oops")
}

func TestRunCommandTimeout(t *testing.T) {
	t.Parallel()

	opts := exec.CmdOpts{Timeout: 50 * time.Millisecond, SkipErrorLogging: true}

	_, err := exec.RunCommand(t.Context(), "sh", opts, "-c", "sleep 5")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestRunCommandExtUsesDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cmd := exec.Command(t.Context(), "pwd")
	cmd.Dir = dir

	out, err := exec.RunCommandExt(t.Context(), cmd, exec.CmdOpts{})
	require.NoError(t, err)
	assert.Equal(t, dir, out)
}

func TestRedact(t *testing.T) {
	t.Parallel()

	redactor := exec.Redact([]string{"hunter2"})
	assert.Equal(t, "token ******", redactor("token hunter2"))
	assert.Equal(t, "clean", exec.Unredacted("clean"))
}

func TestRedactedFailure(t *testing.T) {
	t.Parallel()

	opts := exec.CmdOpts{
		Redactor:         exec.Redact([]string{"hunter2"}),
		SkipErrorLogging: true,
	}

	_, err := exec.RunCommand(t.Context(), "sh", opts, "-c", "echo hunter2 >&2; exit 1")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
	assert.Contains(t, err.Error(), "******")
}
