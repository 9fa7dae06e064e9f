package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axon-cli/axon-build/pkg/devshell"
	"github.com/axon-cli/axon-build/pkg/platform"
	"github.com/axon-cli/axon-build/pkg/workspace"
)

const (
	devDesc = `This command provisions and uses the development environment
`
	devExample = `  axb dev <command> [arguments]...
  # Print the environment as shell exports
  eval "$(axb dev env)"

  # Provision and run the workspace setup hook
  axb dev env --setup

  # Run a workspace tool wrapper
  axb dev run fmt
  axb dev run lint -- --deny-warnings
`
)

// NewDevCmd returns the dev command.
func NewDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dev",
		Short:        "Development environment management",
		Long:         devDesc,
		Example:      devExample,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("dir", "C", ".", "Workspace directory")

	cmd.AddCommand(NewDevEnvCmd())
	cmd.AddCommand(NewDevRunCmd())

	return cmd
}

// provisionDevEnv loads the workspace and provisions its development
// environment for the host platform.
func provisionDevEnv(cc *cobra.Command) (*devshell.Environment, *workspace.Manifest, error) {
	m, err := loadWorkspace(cc.Flags())
	if err != nil {
		return nil, nil, err
	}

	tc, err := composeToolchain(m)
	if err != nil {
		return nil, nil, err
	}

	deps, err := platform.Resolve(platform.Current())
	if err != nil {
		return nil, nil, err
	}

	env, err := devshell.Provision(tc, deps, devshell.DefaultWrappers(m.PackageSpec()))
	if err != nil {
		return nil, nil, fmt.Errorf("provision failed: %w", err)
	}

	return env, m, nil
}

func NewDevEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "env",
		Short:        "Print the development environment as shell exports",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			setup, err := cc.Flags().GetBool("setup")
			if err != nil {
				return fmt.Errorf("invalid argument: %w", err)
			}

			env, m, err := provisionDevEnv(cc)
			if err != nil {
				return err
			}

			if setup {
				err := env.RunSetupHook(cc.Context(),
					m.Dev.SetupHook, m.RootDir(), cc.ErrOrStderr(), cc.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			cc.Print(env.ExportScript())

			return nil
		},
	}

	cmd.Flags().Bool("setup", false, "Run the workspace setup hook before printing")

	return cmd
}

func NewDevRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "run <wrapper> [arguments]...",
		Short:        "Run a workspace tool wrapper",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, args []string) error {
			env, _, err := provisionDevEnv(cc)
			if err != nil {
				return err
			}

			cmd, err := env.Command(cc.Context(), args[0], args[1:]...)
			if err != nil {
				return fmt.Errorf("%w (available: %v)", err, env.Wrappers())
			}

			cmd.Stdin = cc.InOrStdin()
			cmd.Stdout = cc.OutOrStdout()
			cmd.Stderr = cc.ErrOrStderr()

			if err := cmd.Run(); err != nil {
				return fmt.Errorf("%s failed: %w", args[0], err)
			}

			return nil
		},
	}
}
