package toolchain

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/axon-cli/axon-build/pkg/builderrors"
)

// Role identifies the function a component fulfills within a toolchain.
type Role string

const (
	RoleCompiler  Role = "compiler"
	RoleLinter    Role = "linter"
	RoleFormatter Role = "formatter"
	RoleStdlib    Role = "stdlib"
	RoleSource    Role = "source"
)

// ComponentRef names a single toolchain component pinned to a release
// channel, e.g. {Role: compiler, Name: "axc", Channel: "stable-2026-07"}.
type ComponentRef struct {
	Role    Role
	Name    string
	Channel string
}

// Spec is a validated, composed toolchain. It is opaque to downstream build
// steps: they look up components by role and export [Spec.Env], but never
// re-validate channel consistency.
type Spec struct {
	channel    string
	byRole     map[Role]ComponentRef
	components []ComponentRef
}

// Compose merges the given components into one consistent toolchain.
//
// All components must share a single release channel; mixing channels fails
// with [builderrors.ErrChannelMismatch] so that ABI skew between components
// is caught before any build starts. Duplicate roles are rejected.
func Compose(refs []ComponentRef) (*Spec, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no toolchain components", builderrors.ErrInvalidArguments)
	}

	channel := refs[0].Channel
	byRole := make(map[Role]ComponentRef, len(refs))
	components := make([]ComponentRef, 0, len(refs))

	for _, ref := range refs {
		if ref.Name == "" {
			return nil, fmt.Errorf("%w: component %q has no name", builderrors.ErrInvalidArguments, ref.Role)
		}

		if ref.Channel != channel {
			return nil, fmt.Errorf("%w: component %q is on channel %q, expected %q",
				builderrors.ErrChannelMismatch, ref.Name, ref.Channel, channel)
		}

		if prev, ok := byRole[ref.Role]; ok {
			return nil, fmt.Errorf("%w: role %q claimed by both %q and %q",
				builderrors.ErrDuplicateComponent, ref.Role, prev.Name, ref.Name)
		}

		byRole[ref.Role] = ref
		components = append(components, ref)
	}

	return &Spec{
		channel:    channel,
		byRole:     byRole,
		components: components,
	}, nil
}

// Channel returns the release channel shared by every component.
func (s *Spec) Channel() string {
	return s.channel
}

// Component returns the component fulfilling the given role, if any.
func (s *Spec) Component(role Role) (ComponentRef, bool) {
	ref, ok := s.byRole[role]

	return ref, ok
}

// Components returns the components in composition order.
func (s *Spec) Components() []ComponentRef {
	out := make([]ComponentRef, len(s.components))
	copy(out, s.components)

	return out
}

// Env returns environment variables pinning the toolchain for downstream
// tool invocations: AXB_TOOLCHAIN_CHANNEL plus one AXB_TOOLCHAIN_<ROLE>
// entry per component, in composition order.
func (s *Spec) Env() []string {
	env := make([]string, 0, len(s.components)+1)
	env = append(env, "AXB_TOOLCHAIN_CHANNEL="+s.channel)

	for _, ref := range s.components {
		key := "AXB_TOOLCHAIN_" + strcase.ToScreamingSnake(string(ref.Role))
		env = append(env, key+"="+ref.Name)
	}

	return env
}
