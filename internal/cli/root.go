package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/axon-cli/axon-build/pkg/log"
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		h, err := log.CreateHandler(os.Stderr, logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewBakeCmd())
	cmd.AddCommand(NewDevCmd())
	cmd.AddCommand(NewToolchainCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}
