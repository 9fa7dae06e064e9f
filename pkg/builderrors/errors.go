package builderrors

import (
	"errors"
)

var (
	// ErrChannelMismatch indicates toolchain components were drawn from
	// inconsistent release channels.
	ErrChannelMismatch = errors.New("toolchain channel mismatch")

	// ErrDuplicateComponent indicates two toolchain components claim the
	// same role.
	ErrDuplicateComponent = errors.New("duplicate toolchain component")

	// ErrUnsupportedPlatform indicates dependency resolution was requested
	// for a platform outside the supported enumeration.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrCompile indicates the underlying compiler toolchain failed. The
	// toolchain's own diagnostics are attached unmodified.
	ErrCompile = errors.New("compile")

	// ErrLockFileMismatch indicates the declared dependency set disagrees
	// with the pinned lock file.
	ErrLockFileMismatch = errors.New("lock file mismatch")

	// ErrPartialCompletion indicates one or more shell-completion
	// generations failed after a successful build.
	ErrPartialCompletion = errors.New("partial completion failure")

	// ErrUnresolvedBuildContext indicates a bake target references a build
	// context that does not resolve to a concrete image.
	ErrUnresolvedBuildContext = errors.New("unresolved build context")

	// ErrManifestNotFound indicates no workspace manifest was found in the
	// specified path.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrLockFileNotFound indicates the dependency lock file is missing.
	ErrLockFileNotFound = errors.New("lock file not found")

	// ErrInvalidManifest indicates the workspace manifest is malformed or
	// missing required fields.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrUnknownTarget indicates a bake target or group name that is not
	// declared in the bake file.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrUnknownShell indicates a shell kind outside the supported
	// enumeration.
	ErrUnknownShell = errors.New("unknown shell")

	// ErrUnknownWrapper indicates a dev command wrapper name that is not
	// provisioned.
	ErrUnknownWrapper = errors.New("unknown wrapper")

	// ErrSetupHook indicates the dev environment setup hook failed.
	ErrSetupHook = errors.New("setup hook")
)
