package bake

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/workspace"
)

// DefaultFileName is the bake description file name at the workspace root.
const DefaultFileName = "bake.yaml"

// DefaultGroup is the group consulted when no target is named.
const DefaultGroup = "default"

// File is a declarative container build description. It is pure data handed
// to an external build engine; nothing here executes a build.
type File struct {
	Groups  map[string]Group  `json:"group,omitempty"  yaml:"group,omitempty"`
	Targets map[string]Target `json:"target"           yaml:"target"`
}

// Group is a named ordered list of target names with no further semantics,
// used for default-target selection.
type Group struct {
	Targets []string `json:"targets" yaml:"targets"`
}

// Target is one named, independently buildable unit.
type Target struct {
	// File is the build file reference (e.g. Containerfile).
	File string `json:"dockerfile" yaml:"file"`
	// Stage is the build stage within the build file.
	Stage string `json:"target" yaml:"stage"`
	// Platforms lists the container platforms to build.
	Platforms []string `json:"platforms,omitempty" yaml:"platforms,omitempty"`
	// Contexts maps logical names used inside the build file to concrete
	// external image references, resolved at description time.
	Contexts map[string]string `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	// Args follows a three-state model: present-with-value (injected),
	// present-with-null (explicitly unset, distinct from absent), absent
	// (inherits the engine default).
	Args map[string]*string `json:"args,omitempty" yaml:"args,omitempty"`
	// Labels are metadata labels applied to the image.
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// ArgState reports a build argument's three-state value: (value, true) when
// present with a value, (nil, true) when explicitly unset, (nil, false) when
// absent.
func (t Target) ArgState(name string) (*string, bool) {
	value, ok := t.Args[name]

	return value, ok
}

// Load reads the bake file at path and injects OCI metadata labels derived
// from the package spec into every target. Name and version always come
// from the workspace manifest; bake files never carry their own copies.
func Load(path string, pkg workspace.PackageSpec) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bake file: %w", err)
		}

		return nil, fmt.Errorf("read bake file: %w", err)
	}

	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse bake file: %w", err)
	}

	for name, target := range f.Targets {
		if target.Labels == nil {
			target.Labels = map[string]string{}
		}

		target.Labels["org.opencontainers.image.title"] = pkg.Name
		target.Labels["org.opencontainers.image.version"] = pkg.Version
		f.Targets[name] = target
	}

	return f, nil
}

// TargetNames returns all declared target names in sorted order.
func (f *File) TargetNames() []string {
	names := make([]string, 0, len(f.Targets))
	for name := range f.Targets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Select resolves a name to an ordered target list: a group name yields its
// targets, a target name yields itself, and the empty string yields the
// default group (or every target when no default group is declared).
func (f *File) Select(name string) ([]string, error) {
	if name == "" {
		if group, ok := f.Groups[DefaultGroup]; ok {
			return group.Targets, nil
		}

		return f.TargetNames(), nil
	}

	if group, ok := f.Groups[name]; ok {
		return group.Targets, nil
	}

	if _, ok := f.Targets[name]; ok {
		return []string{name}, nil
	}

	return nil, fmt.Errorf("%w: %q", builderrors.ErrUnknownTarget, name)
}
