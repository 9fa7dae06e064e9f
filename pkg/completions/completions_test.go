package completions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/completions"
	"github.com/axon-cli/axon-build/pkg/pkgbuild"
)

// fakeBinary writes a script standing in for the built axon binary. It
// responds to `completions <shell>` on stdout.
func fakeBinary(t *testing.T, script string) *pkgbuild.Artifact {
	t.Helper()

	path := filepath.Join(t.TempDir(), "axon")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755) //nolint:gosec // Test fixture must be executable.
	require.NoError(t, err)

	return &pkgbuild.Artifact{Name: "axon", Version: "1.2.0", BinPath: path}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	binary := fakeBinary(t, `
[ "$1" = completions ] || exit 64
echo "# axon $2 completions"
`)

	artifacts, err := completions.Generate(t.Context(), binary, completions.Shells())
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	for _, shell := range completions.Shells() {
		artifact, ok := artifacts[shell]
		require.True(t, ok)
		require.Equal(t, shell, artifact.Shell)
		require.Equal(t, "# axon "+string(shell)+" completions\n", artifact.Script)
	}
}

func TestGeneratePartialFailure(t *testing.T) {
	t.Parallel()

	binary := fakeBinary(t, `
if [ "$2" = fish ]; then
  echo "unsupported shell: fish" >&2
  exit 1
fi
echo "# axon $2 completions"
`)

	artifacts, err := completions.Generate(t.Context(), binary, completions.Shells())
	require.ErrorIs(t, err, builderrors.ErrPartialCompletion)
	// The failed shell must be named.
	require.ErrorContains(t, err, "fish")

	// Other shells still produced artifacts.
	require.Len(t, artifacts, 2)
	require.Contains(t, artifacts, completions.Bash)
	require.Contains(t, artifacts, completions.Zsh)
	require.NotContains(t, artifacts, completions.Fish)
}

func TestGenerateEmptyScriptIsFailure(t *testing.T) {
	t.Parallel()

	binary := fakeBinary(t, "exit 0\n")

	artifacts, err := completions.Generate(t.Context(), binary, []completions.Shell{completions.Bash})
	require.ErrorIs(t, err, builderrors.ErrPartialCompletion)
	require.ErrorContains(t, err, "empty completion script")
	require.Empty(t, artifacts)
}

func TestInstall(t *testing.T) {
	t.Parallel()

	artifacts := map[completions.Shell]completions.Artifact{
		completions.Bash: {Shell: completions.Bash, Script: "# bash\n"},
		completions.Fish: {Shell: completions.Fish, Script: "# fish\n"},
		completions.Zsh:  {Shell: completions.Zsh, Script: "# zsh\n"},
	}

	prefix := t.TempDir()

	installed, err := completions.Install(artifacts, "axon", prefix)
	require.NoError(t, err)

	require.Equal(t, map[completions.Shell]string{
		completions.Bash: filepath.Join(prefix, "bash-completion", "completions", "axon"),
		completions.Fish: filepath.Join(prefix, "fish", "vendor_completions.d", "axon.fish"),
		completions.Zsh:  filepath.Join(prefix, "zsh", "site-functions", "_axon"),
	}, installed)

	for shell, path := range installed {
		data, err := os.ReadFile(path) //nolint:gosec // Test reads its own output.
		require.NoError(t, err)
		require.Equal(t, string(artifacts[shell].Script), string(data))
	}
}

func TestInstallPartialSet(t *testing.T) {
	t.Parallel()

	// A generation failure for one shell must not block installing the rest.
	artifacts := map[completions.Shell]completions.Artifact{
		completions.Bash: {Shell: completions.Bash, Script: "# bash\n"},
		completions.Zsh:  {Shell: completions.Zsh, Script: "# zsh\n"},
	}

	prefix := t.TempDir()

	installed, err := completions.Install(artifacts, "axon", prefix)
	require.NoError(t, err)
	require.Len(t, installed, 2)
	require.NotContains(t, installed, completions.Fish)
}

func TestParseShell(t *testing.T) {
	t.Parallel()

	for _, shell := range completions.Shells() {
		got, err := completions.ParseShell(string(shell))
		require.NoError(t, err)
		require.Equal(t, shell, got)
	}

	_, err := completions.ParseShell("powershell")
	require.ErrorIs(t, err, builderrors.ErrUnknownShell)
}
