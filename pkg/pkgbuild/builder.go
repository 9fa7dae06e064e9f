package pkgbuild

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/exec"
	"github.com/axon-cli/axon-build/pkg/platform"
	"github.com/axon-cli/axon-build/pkg/toolchain"
	"github.com/axon-cli/axon-build/pkg/workspace"
)

// sourceDateEpoch pins build timestamps to 2000-01-01T00:00:00Z so that
// identical inputs yield bit-identical binaries where the compiler honors
// SOURCE_DATE_EPOCH.
const sourceDateEpoch = "946684800"

// defaultBuildArgs is the compiler invocation used when the manifest's
// [build] section declares none.
var defaultBuildArgs = []string{"build", "--locked", "--release"}

// Artifact is a built, installed binary.
type Artifact struct {
	Name    string
	Version string
	BinPath string
	SHA256  string
}

// Builder produces binary artifacts from workspace source using a composed
// toolchain. All compilation is delegated to the external compiler
// component; the builder only prepares inputs and verifies outputs.
type Builder struct {
	installDir string
	timeout    time.Duration
}

// Option configures a [Builder].
type Option func(*Builder)

// WithTimeout bounds each compiler invocation.
func WithTimeout(d time.Duration) Option {
	return func(b *Builder) {
		b.timeout = d
	}
}

// NewBuilder creates a builder installing artifacts into installDir.
func NewBuilder(installDir string, opts ...Option) *Builder {
	b := &Builder{installDir: installDir}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build compiles the package deterministically and installs the resulting
// binary.
//
// The declared dependency set is verified against the lock file before the
// compiler runs; a mismatch fails with [builderrors.ErrLockFileMismatch].
// Compiler failures are surfaced as [builderrors.ErrCompile] wrapping the
// toolchain's unmodified diagnostics.
func (b *Builder) Build(
	ctx context.Context,
	pkg workspace.PackageSpec,
	tc *toolchain.Spec,
	deps platform.DependencySet,
) (*Artifact, error) {
	lf, err := workspace.LoadLockFile(pkg.LockFile)
	if err != nil {
		return nil, err
	}

	if err := pkg.VerifyLock(lf); err != nil {
		return nil, err
	}

	compiler, ok := tc.Component(toolchain.RoleCompiler)
	if !ok {
		return nil, fmt.Errorf("%w: toolchain has no compiler component", builderrors.ErrInvalidArguments)
	}

	args := pkg.BuildArgs
	if len(args) == 0 {
		args = defaultBuildArgs
	}

	cmd := exec.Command(ctx, compiler.Name, args...)
	cmd.Dir = pkg.RootDir
	cmd.Env = append(os.Environ(), buildEnv(tc, deps, lf)...)

	if _, err := exec.RunCommandExt(ctx, cmd, exec.CmdOpts{Timeout: b.timeout}); err != nil {
		return nil, fmt.Errorf("%w: %w", builderrors.ErrCompile, err)
	}

	output := pkg.Output
	if output == "" {
		output = filepath.Join("target", "release", pkg.Name)
	}

	binPath, err := b.install(filepath.Join(pkg.RootDir, output), pkg.Name)
	if err != nil {
		return nil, err
	}

	sum, err := fileChecksum(binPath)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Name:    pkg.Name,
		Version: pkg.Version,
		BinPath: binPath,
		SHA256:  sum,
	}, nil
}

// buildEnv assembles the deterministic environment overrides for a compiler
// invocation: the toolchain channel pins, the pinned source date, the lock
// file checksum, and the platform's native link inputs.
func buildEnv(tc *toolchain.Spec, deps platform.DependencySet, lf *workspace.LockFile) []string {
	env := tc.Env()
	env = append(env,
		"SOURCE_DATE_EPOCH="+sourceDateEpoch,
		"AXB_LOCK_CHECKSUM="+lf.Checksum(),
	)

	if flags := deps.LinkFlags(); len(flags) > 0 {
		env = append(env, "AXB_LINK_FLAGS="+strings.Join(flags, " "))
	}

	if paths := deps.SearchPaths(); len(paths) > 0 {
		env = append(env, prependPath(deps.SearchPathVar(), paths))
	}

	return env
}

// prependPath builds a VAR=new:existing entry, keeping any existing value.
func prependPath(key string, paths []string) string {
	value := strings.Join(paths, string(os.PathListSeparator))
	if existing := os.Getenv(key); existing != "" {
		value += string(os.PathListSeparator) + existing
	}

	return key + "=" + value
}

// install copies the compiler output into the executable directory.
func (b *Builder) install(src, name string) (string, error) {
	if err := os.MkdirAll(b.installDir, 0o755); err != nil {
		return "", fmt.Errorf("create install dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open build output: %w", err)
	}
	defer in.Close() //nolint:errcheck // Best-effort close.

	dst := filepath.Join(b.installDir, name)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755) //nolint:gosec // Installing an executable.
	if err != nil {
		return "", fmt.Errorf("create binary: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()

		return "", fmt.Errorf("install binary: %w", err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("install binary: %w", err)
	}

	return dst, nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is constructed by the builder.
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck // Best-effort close.

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum artifact: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
