package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/toolchain"
)

const (
	// ManifestName is the workspace manifest file name.
	ManifestName = "axon.toml"
	// LockFileName is the dependency lock file name.
	LockFileName = "axon.lock"
)

// Manifest is the authoritative workspace description. Package name and
// version live here and only here; every other component derives them from
// the [PackageSpec] instead of duplicating literals.
type Manifest struct {
	Package      PackageSection    `toml:"package"`
	Toolchain    ToolchainSection  `toml:"toolchain"`
	Dependencies map[string]string `toml:"dependencies"`
	Build        BuildSection      `toml:"build"`
	Dev          DevSection        `toml:"dev"`

	rootDir string
}

type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type ToolchainSection struct {
	Channel    string            `toml:"channel"`
	Components map[string]string `toml:"components"`
}

type BuildSection struct {
	// Args override the default compiler invocation arguments.
	Args []string `toml:"args"`
	// Output is the compiler's output path relative to the workspace root.
	Output string `toml:"output"`
}

type DevSection struct {
	// SetupHook is a shell script run when the dev environment is
	// provisioned, with the provisioned environment applied.
	SetupHook string `toml:"setup_hook"`
}

// Load reads and validates the manifest from dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", builderrors.ErrManifestNotFound, path)
		}

		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := &Manifest{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %w", builderrors.ErrInvalidManifest, err)
	}

	if m.Package.Name == "" {
		return nil, fmt.Errorf("%w: package.name is required", builderrors.ErrInvalidManifest)
	}

	if m.Package.Version == "" {
		return nil, fmt.Errorf("%w: package.version is required", builderrors.ErrInvalidManifest)
	}

	m.rootDir = dir

	return m, nil
}

// PackageSpec is the build input derived from the manifest.
type PackageSpec struct {
	Name         string
	Version      string
	RootDir      string
	LockFile     string
	Dependencies map[string]string
	BuildArgs    []string
	Output       string
}

// PackageSpec derives the package build input from the manifest.
func (m *Manifest) PackageSpec() PackageSpec {
	deps := make(map[string]string, len(m.Dependencies))
	for name, version := range m.Dependencies {
		deps[name] = version
	}

	return PackageSpec{
		Name:         m.Package.Name,
		Version:      m.Package.Version,
		RootDir:      m.rootDir,
		LockFile:     filepath.Join(m.rootDir, LockFileName),
		Dependencies: deps,
		BuildArgs:    m.Build.Args,
		Output:       m.Build.Output,
	}
}

// componentRoles fixes the composition order of declared toolchain
// components.
var componentRoles = []toolchain.Role{
	toolchain.RoleCompiler,
	toolchain.RoleLinter,
	toolchain.RoleFormatter,
	toolchain.RoleStdlib,
	toolchain.RoleSource,
}

// ToolchainRefs returns the declared toolchain components as composable
// refs, all tagged with the manifest's release channel.
func (m *Manifest) ToolchainRefs() []toolchain.ComponentRef {
	refs := make([]toolchain.ComponentRef, 0, len(m.Toolchain.Components))

	for _, role := range componentRoles {
		name, ok := m.Toolchain.Components[string(role)]
		if !ok {
			continue
		}

		refs = append(refs, toolchain.ComponentRef{
			Role:    role,
			Name:    name,
			Channel: m.Toolchain.Channel,
		})
	}

	return refs
}

// RootDir returns the workspace root the manifest was loaded from.
func (m *Manifest) RootDir() string {
	return m.rootDir
}
