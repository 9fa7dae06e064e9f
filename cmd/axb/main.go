package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/axon-cli/axon-build/internal/cli"
	"github.com/axon-cli/axon-build/pkg/log"
)

func init() {
	log.SetLogFormat("text")
	log.SetLogLevel("warn")
}

const (
	cmdName = "axb"

	shortDesc = "The axon build Command Line Interface (CLI)."
	longDesc  = `The axon build Command Line Interface (CLI).

axb builds and packages the axon workspace: it composes the pinned toolchain,
verifies dependencies against the lock file, compiles reproducibly, generates
shell completions from the built binary, describes container build targets,
and provisions scoped development environments.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
