package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/axon-cli/axon-build/pkg/builderrors"
)

// NewToolchainCmd returns the toolchain command.
func NewToolchainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "toolchain",
		Short:        "Show the composed workspace toolchain",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			quiet, err := cc.Flags().GetBool("quiet")
			if err != nil {
				return fmt.Errorf("%w: %w", builderrors.ErrInvalidArguments, err)
			}

			m, err := loadWorkspace(cc.Flags())
			if err != nil {
				return err
			}

			tc, err := composeToolchain(m)
			if err != nil {
				return err
			}

			styled := !quiet && isatty.IsTerminal(os.Stdout.Fd())
			cc.Print(renderToolchain(tc, styled))

			return nil
		},
	}

	cmd.Flags().StringP("dir", "C", ".", "Workspace directory")
	cmd.Flags().BoolP("quiet", "q", false, "Plain output without styling")

	return cmd
}
