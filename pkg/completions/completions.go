package completions

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/exec"
	"github.com/axon-cli/axon-build/pkg/pkgbuild"
)

// Shell is a supported completion shell kind.
type Shell string

const (
	Bash Shell = "bash"
	Fish Shell = "fish"
	Zsh  Shell = "zsh"
)

// Shells returns the supported shell enumeration in stable order.
func Shells() []Shell {
	return []Shell{Bash, Fish, Zsh}
}

// ParseShell parses a shell kind.
func ParseShell(s string) (Shell, error) {
	switch Shell(s) {
	case Bash, Fish, Zsh:
		return Shell(s), nil
	default:
		return "", fmt.Errorf("%w: %q", builderrors.ErrUnknownShell, s)
	}
}

// Artifact is one generated completion script.
type Artifact struct {
	Shell  Shell
	Script string
}

// Generate invokes the freshly built binary once per shell kind, capturing
// the emitted completion script. Scripts are regenerated on every call and
// never cached across builds.
//
// Generation failures are per-shell: a failing shell does not block the
// others. When any shell fails, the successful artifacts are still returned
// alongside a [builderrors.ErrPartialCompletion] naming each failed shell.
func Generate(ctx context.Context, binary *pkgbuild.Artifact, shells []Shell) (map[Shell]Artifact, error) {
	var mu sync.Mutex

	artifacts := make(map[Shell]Artifact, len(shells))

	var merr error

	g, gCtx := errgroup.WithContext(ctx)

	for _, shell := range shells {
		g.Go(func() error {
			script, err := exec.RunCommand(gCtx, binary.BinPath,
				exec.CmdOpts{SkipErrorLogging: true},
				"completions", string(shell))

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err != nil:
				merr = multierror.Append(merr, fmt.Errorf("%s: %w", shell, err))
			case script == "":
				merr = multierror.Append(merr, fmt.Errorf("%s: empty completion script", shell))
			default:
				artifacts[shell] = Artifact{Shell: shell, Script: script + "\n"}
			}

			return nil // Collect per-shell failures, don't abort the group.
		})
	}

	_ = g.Wait()

	if merr != nil {
		return artifacts, fmt.Errorf("%w: %w", builderrors.ErrPartialCompletion, merr)
	}

	return artifacts, nil
}
