package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/axon-cli/axon-build/pkg/toolchain"
	"github.com/axon-cli/axon-build/pkg/workspace"
)

// loadWorkspace reads the manifest from the directory named by the "dir"
// flag.
func loadWorkspace(flags *pflag.FlagSet) (*workspace.Manifest, error) {
	dir, err := flags.GetString("dir")
	if err != nil {
		return nil, fmt.Errorf("invalid argument: %w", err)
	}

	m, err := workspace.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	return m, nil
}

// composeToolchain composes the toolchain declared in the manifest.
func composeToolchain(m *workspace.Manifest) (*toolchain.Spec, error) {
	tc, err := toolchain.Compose(m.ToolchainRefs())
	if err != nil {
		return nil, fmt.Errorf("compose toolchain: %w", err)
	}

	return tc, nil
}
