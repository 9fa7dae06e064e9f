package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/axon-cli/axon-build/pkg/builderrors"
)

// LockFile pins exact versions of all transitive dependencies.
type LockFile struct {
	Version  int             `toml:"version"`
	Packages []LockedPackage `toml:"package"`

	// checksum of the raw lock file content, part of the reproducibility
	// input set.
	checksum string
}

type LockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// LoadLockFile reads the lock file at path.
func LoadLockFile(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", builderrors.ErrLockFileNotFound, path)
		}

		return nil, fmt.Errorf("read lock file: %w", err)
	}

	lf := &LockFile{}
	if err := toml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parse lock file: %w", err)
	}

	sum := sha256.Sum256(data)
	lf.checksum = hex.EncodeToString(sum[:])

	return lf, nil
}

// Checksum returns the sha256 of the raw lock file content.
func (lf *LockFile) Checksum() string {
	return lf.checksum
}

// pinned returns the locked version for a package name, if present.
func (lf *LockFile) pinned(name string) (string, bool) {
	for _, p := range lf.Packages {
		if p.Name == name {
			return p.Version, true
		}
	}

	return "", false
}

// VerifyLock checks every declared dependency against the lock file's pinned
// versions. Any dependency that is missing from the lock file or pinned at a
// different version fails with [builderrors.ErrLockFileMismatch]; the build
// must not proceed with unpinned versions.
func (p PackageSpec) VerifyLock(lf *LockFile) error {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		want := p.Dependencies[name]

		got, ok := lf.pinned(name)
		if !ok {
			return fmt.Errorf("%w: dependency %q is not pinned in %s",
				builderrors.ErrLockFileMismatch, name, LockFileName)
		}

		if got != want {
			return fmt.Errorf("%w: dependency %q declared at %q but pinned at %q",
				builderrors.ErrLockFileMismatch, name, want, got)
		}
	}

	return nil
}
