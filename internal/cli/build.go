package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/axon-cli/axon-build/pkg/builderrors"
	"github.com/axon-cli/axon-build/pkg/completions"
	"github.com/axon-cli/axon-build/pkg/pkgbuild"
	"github.com/axon-cli/axon-build/pkg/platform"
)

const buildDesc = `This command builds the workspace package

The declared dependencies are verified against the lock file, the package is
compiled with the composed toolchain, and the resulting binary is installed.
Shell completion scripts are generated by invoking the built binary and
installed next to it.
`

// NewBuildCmd returns the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "build",
		Short:        "Build and package the workspace",
		Long:         buildDesc,
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			var merr error

			flags := cc.Flags()
			platformName, err := flags.GetString("platform")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			installDir, err := flags.GetString("install-dir")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			archive, err := flags.GetBool("archive")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			archiveDir, err := flags.GetString("archive-dir")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			withCompletions, err := flags.GetBool("completions")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			sharePrefix, err := flags.GetString("share-prefix")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			timeout, err := flags.GetDuration("timeout")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", builderrors.ErrInvalidArguments, merr)
			}

			m, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			tc, err := composeToolchain(m)
			if err != nil {
				return err
			}

			target := platform.Current()
			if platformName != "" {
				target, err = platform.ParseID(platformName)
				if err != nil {
					return err
				}
			}

			deps, err := platform.Resolve(target)
			if err != nil {
				return err
			}

			pkg := m.PackageSpec()

			builder := pkgbuild.NewBuilder(installDir, pkgbuild.WithTimeout(timeout))

			artifact, err := builder.Build(cc.Context(), pkg, tc, deps)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}

			cc.Printf("built %s %s (%s)\n", artifact.Name, artifact.Version, artifact.SHA256)

			if archive {
				archivePath, err := pkgbuild.Archive(artifact, target, archiveDir)
				if err != nil {
					return fmt.Errorf("archive failed: %w", err)
				}

				cc.Printf("archived %s\n", archivePath)
			}

			if !withCompletions {
				return nil
			}

			scripts, genErr := completions.Generate(cc.Context(), artifact, completions.Shells())
			if genErr != nil && !errors.Is(genErr, builderrors.ErrPartialCompletion) {
				return fmt.Errorf("completions failed: %w", genErr)
			}

			installed, err := completions.Install(scripts, artifact.Name, sharePrefix)
			if err != nil {
				return fmt.Errorf("completions install failed: %w", err)
			}

			for shell, path := range installed {
				slog.Info("installed completion", "shell", shell, "path", path)
			}

			if genErr != nil {
				return fmt.Errorf("completions incomplete: %w", genErr)
			}

			return nil
		},
	}

	cmd.Flags().StringP("dir", "C", ".", "Workspace directory")
	cmd.Flags().String("platform", "", "Target platform (linux, darwin); defaults to the host")
	cmd.Flags().String("install-dir", "dist/bin", "Directory binaries are installed into")
	cmd.Flags().Bool("archive", false, "Produce a compressed release archive")
	cmd.Flags().String("archive-dir", "dist", "Directory release archives are written into")
	cmd.Flags().Bool("completions", true, "Generate and install shell completions")
	cmd.Flags().String("share-prefix", "dist/share", "Prefix completion scripts are installed under")
	cmd.Flags().Duration("timeout", 10*time.Minute, "Timeout for the compiler invocation")

	if err := cmd.MarkFlagDirname("dir"); err != nil {
		panic(err)
	}

	return cmd
}
