package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axon-cli/axon-build/pkg/version"
)

func GetVersionString() string {
	rev := version.Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}

	return fmt.Sprintf("%s+%s", version.Version, rev)
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the axb CLI",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(GetVersionString())
		},
	}
}
