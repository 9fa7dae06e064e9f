package devshell

import (
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"sort"
	"strings"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/exec"
	"github.com/axon-cli/axon-build/pkg/platform"
	"github.com/axon-cli/axon-build/pkg/toolchain"
	"github.com/axon-cli/axon-build/pkg/workspace"
)

// WrapperSpec declares a named wrapper around one toolchain component with
// arguments pre-filled for the whole workspace, so `axb dev run fmt` formats
// every package no matter which subdirectory it runs from.
type WrapperSpec struct {
	Name string
	Role toolchain.Role
	Args []string
}

// DefaultWrappers returns the standard wrapper set for a workspace. Each
// wrapper is anchored to the workspace root so invocations behave
// identically from any working directory.
func DefaultWrappers(pkg workspace.PackageSpec) []WrapperSpec {
	return []WrapperSpec{
		{Name: "fmt", Role: toolchain.RoleFormatter, Args: []string{"--workspace-root", pkg.RootDir}},
		{Name: "lint", Role: toolchain.RoleLinter, Args: []string{"--workspace-root", pkg.RootDir, "--all-targets"}},
		{Name: "test", Role: toolchain.RoleCompiler, Args: []string{"test", "--workspace-root", pkg.RootDir}},
		{Name: "doc", Role: toolchain.RoleCompiler, Args: []string{"doc", "--workspace-root", pkg.RootDir}},
	}
}

// Wrapper is a provisioned command wrapper: the resolved component binary
// plus its pre-filled arguments.
type Wrapper struct {
	Name string
	Bin  string
	Args []string
}

// Environment is a provisioned development environment. It is inert until
// applied: [Environment.Environ] merges it into a child process environment,
// [Environment.Activate] applies it to the current process with a guaranteed
// revert.
type Environment struct {
	vars     map[string]string
	prepends map[string][]string
	wrappers map[string]Wrapper
	order    []string
}

// Provision builds a development environment from a composed toolchain and
// the platform's native dependencies. Wrappers whose role has no component
// in the toolchain fail with [builderrors.ErrUnknownWrapper] so a missing
// linter is caught at provision time, not first use.
func Provision(tc *toolchain.Spec, deps platform.DependencySet, wrappers []WrapperSpec) (*Environment, error) {
	env := &Environment{
		vars:     map[string]string{},
		prepends: map[string][]string{},
		wrappers: make(map[string]Wrapper, len(wrappers)),
	}

	for _, kv := range tc.Env() {
		key, value, _ := strings.Cut(kv, "=")
		env.vars[key] = value
		env.order = append(env.order, key)
	}

	if flags := deps.LinkFlags(); len(flags) > 0 {
		env.vars["AXB_LINK_FLAGS"] = strings.Join(flags, " ")
		env.order = append(env.order, "AXB_LINK_FLAGS")
	}

	// Native search paths are prepended to whatever the caller already has,
	// never substituted for it.
	if paths := deps.SearchPaths(); len(paths) > 0 {
		env.prepends[deps.SearchPathVar()] = paths
		env.order = append(env.order, deps.SearchPathVar())
	}

	for _, spec := range wrappers {
		ref, ok := tc.Component(spec.Role)
		if !ok {
			return nil, fmt.Errorf("%w: wrapper %q needs a %q component",
				builderrors.ErrUnknownWrapper, spec.Name, spec.Role)
		}

		env.wrappers[spec.Name] = Wrapper{
			Name: spec.Name,
			Bin:  ref.Name,
			Args: append([]string(nil), spec.Args...),
		}
	}

	return env, nil
}

// Wrapper returns the provisioned wrapper with the given name.
func (e *Environment) Wrapper(name string) (Wrapper, error) {
	w, ok := e.wrappers[name]
	if !ok {
		return Wrapper{}, fmt.Errorf("%w: %q", builderrors.ErrUnknownWrapper, name)
	}

	return w, nil
}

// Wrappers returns the provisioned wrapper names in sorted order.
func (e *Environment) Wrappers() []string {
	names := make([]string, 0, len(e.wrappers))
	for name := range e.wrappers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Environ merges the environment into base, which is typically
// os.Environ(). Plain variables override base entries; search path
// variables are prepended to any existing value.
func (e *Environment) Environ(base []string) []string {
	merged := make([]string, 0, len(base)+len(e.order))
	seen := make(map[string]bool, len(e.order))

	for _, kv := range base {
		key, value, _ := strings.Cut(kv, "=")

		if override, ok := e.vars[key]; ok {
			merged = append(merged, key+"="+override)
			seen[key] = true

			continue
		}

		if paths, ok := e.prepends[key]; ok {
			merged = append(merged, key+"="+prependPaths(paths, value))
			seen[key] = true

			continue
		}

		merged = append(merged, kv)
	}

	for _, key := range e.order {
		if seen[key] {
			continue
		}

		if paths, ok := e.prepends[key]; ok {
			merged = append(merged, key+"="+prependPaths(paths, ""))

			continue
		}

		merged = append(merged, key+"="+e.vars[key])
	}

	return merged
}

// Activate applies the environment to the current process and returns a
// restore function that reverts every variable to its prior state,
// including unsetting variables that did not exist before.
func (e *Environment) Activate() (func(), error) {
	type saved struct {
		key     string
		value   string
		existed bool
	}

	restore := make([]saved, 0, len(e.order))

	for _, key := range e.order {
		prev, existed := os.LookupEnv(key)
		restore = append(restore, saved{key: key, value: prev, existed: existed})

		next := e.vars[key]
		if paths, ok := e.prepends[key]; ok {
			next = prependPaths(paths, prev)
		}

		if err := os.Setenv(key, next); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}

	return func() {
		for _, s := range restore {
			if s.existed {
				os.Setenv(s.key, s.value)
			} else {
				os.Unsetenv(s.key)
			}
		}
	}, nil
}

// ExportScript renders the environment as shell export statements, suitable
// for `eval "$(axb dev env)"`. Search path variables reference their prior
// value so evaluation composes with the caller's shell state.
func (e *Environment) ExportScript() string {
	var b strings.Builder

	for _, key := range e.order {
		if paths, ok := e.prepends[key]; ok {
			fmt.Fprintf(&b, "export %s=\"%s${%s:+:$%s}\"\n",
				key, strings.Join(paths, ":"), key, key)

			continue
		}

		fmt.Fprintf(&b, "export %s=%q\n", key, e.vars[key])
	}

	return b.String()
}

// Command builds an *exec.Cmd invoking the named wrapper with its
// pre-filled arguments followed by extra, running under the provisioned
// environment.
func (e *Environment) Command(ctx context.Context, name string, extra ...string) (*osexec.Cmd, error) {
	w, err := e.Wrapper(name)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, len(w.Args)+len(extra))
	args = append(args, w.Args...)
	args = append(args, extra...)

	cmd := exec.Command(ctx, w.Bin, args...)
	cmd.Env = e.Environ(os.Environ())

	return cmd, nil
}

func prependPaths(paths []string, existing string) string {
	joined := strings.Join(paths, ":")
	if existing == "" {
		return joined
	}

	return joined + ":" + existing
}
