package platform

import (
	"fmt"
	"runtime"

	"github.com/axon-cli/axon-build/pkg/builderrors"
)

// ID identifies a supported target platform.
type ID string

const (
	Linux  ID = "linux"
	Darwin ID = "darwin"
)

// IDs returns the supported platform enumeration in stable order.
func IDs() []ID {
	return []ID{Linux, Darwin}
}

// Current returns the platform ID for the running process.
func Current() ID {
	if runtime.GOOS == "darwin" {
		return Darwin
	}

	return Linux
}

// ParseID parses a platform identifier. "macos" is accepted as an alias for
// darwin. Unknown identifiers fail with [builderrors.ErrUnsupportedPlatform].
func ParseID(s string) (ID, error) {
	switch s {
	case "linux":
		return Linux, nil
	case "darwin", "macos":
		return Darwin, nil
	default:
		return "", fmt.Errorf("%w: %q", builderrors.ErrUnsupportedPlatform, s)
	}
}

// Kind distinguishes native dependency flavors.
type Kind string

const (
	KindFramework Kind = "framework"
	KindLibrary   Kind = "library"
)

// Dependency is one native library or framework reference.
type Dependency struct {
	Name string
	Kind Kind
}

// DependencySet holds the ordered native dependencies a platform needs at
// build and run time. The empty set is valid.
type DependencySet struct {
	platform ID
	deps     []Dependency
}

// dependencyTable is the single place platform-conditional native dependency
// knowledge lives. Darwin needs the three frameworks pulled in transitively
// by build-script probing; every other supported platform needs nothing
// extra.
var dependencyTable = map[ID][]Dependency{
	Linux: {},
	Darwin: {
		{Name: "AppKit", Kind: KindFramework},
		{Name: "Security", Kind: KindFramework},
		{Name: "SystemConfiguration", Kind: KindFramework},
	},
}

// Resolve returns the native dependency set for the given platform. It is
// pure and total over [IDs]; unknown platforms fail with
// [builderrors.ErrUnsupportedPlatform].
func Resolve(id ID) (DependencySet, error) {
	deps, ok := dependencyTable[id]
	if !ok {
		return DependencySet{}, fmt.Errorf("%w: %q", builderrors.ErrUnsupportedPlatform, id)
	}

	out := make([]Dependency, len(deps))
	copy(out, deps)

	return DependencySet{platform: id, deps: out}, nil
}

// Platform returns the platform this set was resolved for.
func (d DependencySet) Platform() ID {
	return d.platform
}

// Dependencies returns the ordered dependency list.
func (d DependencySet) Dependencies() []Dependency {
	out := make([]Dependency, len(d.deps))
	copy(out, d.deps)

	return out
}

// LinkFlags returns the linker flags making each dependency available to
// build-time linking, e.g. "-framework AppKit" on darwin.
func (d DependencySet) LinkFlags() []string {
	flags := make([]string, 0, len(d.deps)*2)

	for _, dep := range d.deps {
		switch dep.Kind {
		case KindFramework:
			flags = append(flags, "-framework", dep.Name)
		case KindLibrary:
			flags = append(flags, "-l"+dep.Name)
		}
	}

	return flags
}

// SearchPathVar returns the environment variable holding the native library
// search path on this platform.
func (d DependencySet) SearchPathVar() string {
	if d.platform == Darwin {
		return "DYLD_FALLBACK_FRAMEWORK_PATH"
	}

	return "LD_LIBRARY_PATH"
}

// SearchPaths returns the directories to prepend to [DependencySet.SearchPathVar]
// so build-time executables can locate the dependencies. Empty when the set
// is empty.
func (d DependencySet) SearchPaths() []string {
	if len(d.deps) == 0 {
		return nil
	}

	if d.platform == Darwin {
		return []string{"/System/Library/Frameworks"}
	}

	return nil
}
