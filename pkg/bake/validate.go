package bake

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/axon-cli/axon-build/pkg/builderrors"
)

// contextSchemes are the reference forms accepted as concrete build
// contexts. Everything else cannot be resolved to an image before the build
// engine runs and is rejected at description-validation time.
var contextSchemes = []string{"docker-image://", "oci-layout://"}

// Validate checks the description before it is handed to the build engine:
// every target names exactly one build file and one build stage, every
// build context resolves to a concrete image reference (or another declared
// target), and every group member exists. Validation failures are collected
// so a single pass reports them all.
func (f *File) Validate() error {
	var merr *multierror.Error

	for _, name := range f.TargetNames() {
		target := f.Targets[name]

		if target.File == "" {
			merr = multierror.Append(merr, fmt.Errorf("target %q: build file is required", name))
		}

		if target.Stage == "" {
			merr = multierror.Append(merr, fmt.Errorf("target %q: build stage is required", name))
		}

		merr = multierror.Append(merr, f.validateContexts(name, target))
	}

	groups := make([]string, 0, len(f.Groups))
	for name := range f.Groups {
		groups = append(groups, name)
	}

	sort.Strings(groups)

	for _, name := range groups {
		for _, member := range f.Groups[name].Targets {
			if _, ok := f.Targets[member]; !ok {
				merr = multierror.Append(merr,
					fmt.Errorf("%w: group %q references %q", builderrors.ErrUnknownTarget, name, member))
			}
		}
	}

	return merr.ErrorOrNil()
}

func (f *File) validateContexts(targetName string, target Target) error {
	var merr *multierror.Error

	names := make([]string, 0, len(target.Contexts))
	for name := range target.Contexts {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		ref := target.Contexts[name]
		if f.contextResolves(ref) {
			continue
		}

		merr = multierror.Append(merr,
			fmt.Errorf("%w: target %q context %q -> %q",
				builderrors.ErrUnresolvedBuildContext, targetName, name, ref))
	}

	return merr.ErrorOrNil()
}

func (f *File) contextResolves(ref string) bool {
	if ref == "" {
		return false
	}

	for _, scheme := range contextSchemes {
		if rest, ok := strings.CutPrefix(ref, scheme); ok {
			return rest != ""
		}
	}

	if targetRef, ok := strings.CutPrefix(ref, "target:"); ok {
		_, declared := f.Targets[targetRef]

		return declared
	}

	return false
}
