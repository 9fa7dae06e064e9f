package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/axon-cli/axon-build/pkg/bake"
	"github.com/axon-cli/axon-build/pkg/builderrors"
)

const (
	bakeDesc = `This command manages container build target descriptions
`
	bakeExample = `  axb bake <command> [arguments]...
  # Validate the build description
  axb bake validate

  # Render the build plan for the default group
  axb bake print

  # Render the build plan for one target or group
  axb bake print runtime

  # List declared groups and targets
  axb bake list

  # Emit the JSON schema for bake files
  axb bake schema
`
)

// NewBakeCmd returns the bake command.
func NewBakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bake",
		Short:        "Container build target management",
		Long:         bakeDesc,
		Example:      bakeExample,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("file", "f", bake.DefaultFileName, "Path to the bake file")
	cmd.PersistentFlags().StringP("dir", "C", ".", "Workspace directory")

	if err := cmd.MarkPersistentFlagFilename("file", "yaml", "yml"); err != nil {
		panic(err)
	}

	cmd.AddCommand(NewBakeValidateCmd())
	cmd.AddCommand(NewBakePrintCmd())
	cmd.AddCommand(NewBakeListCmd())
	cmd.AddCommand(NewBakeSchemaCmd())

	return cmd
}

// loadBakeFile loads the bake file named by the persistent flags, stamped
// with the workspace's package identity.
func loadBakeFile(cc *cobra.Command) (*bake.File, error) {
	var merr error

	flags := cc.Flags()
	file, err := flags.GetString("file")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", builderrors.ErrInvalidArguments, merr)
	}

	m, err := loadWorkspace(flags)
	if err != nil {
		return nil, err
	}

	// Relative bake file paths resolve against the workspace root, not the
	// process working directory.
	if !filepath.IsAbs(file) {
		file = filepath.Join(m.RootDir(), file)
	}

	f, err := bake.Load(file, m.PackageSpec())
	if err != nil {
		return nil, fmt.Errorf("load bake file: %w", err)
	}

	return f, nil
}

func NewBakeValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "validate",
		Short:        "Validate the build description",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			f, err := loadBakeFile(cc)
			if err != nil {
				return err
			}

			if err := f.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			cc.Println("bake file is valid")

			return nil
		},
	}
}

func NewBakePrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "print [target]",
		Short:        "Render the build plan as engine-consumable JSON",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, args []string) error {
			f, err := loadBakeFile(cc)
			if err != nil {
				return err
			}

			selection := ""
			if len(args) == 1 {
				selection = args[0]
			}

			plan, err := f.Plan(selection)
			if err != nil {
				return err
			}

			cc.Println(string(plan))

			return nil
		},
	}
}

func NewBakeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List declared groups and targets",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			quiet, err := cc.Flags().GetBool("quiet")
			if err != nil {
				return fmt.Errorf("%w: %w", builderrors.ErrInvalidArguments, err)
			}

			f, err := loadBakeFile(cc)
			if err != nil {
				return err
			}

			styled := !quiet && isatty.IsTerminal(os.Stdout.Fd())
			cc.Print(renderBakeFile(f, styled))

			return nil
		},
	}

	cmd.Flags().BoolP("quiet", "q", false, "Plain output without styling")

	return cmd
}

func NewBakeSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "schema",
		Short:        "Emit the JSON schema for bake files",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			data, err := bake.Schema()
			if err != nil {
				return err
			}

			cc.Println(string(data))

			return nil
		},
	}
}
