// Command jenkins-multibranch generates the config.xml of a Jenkins
// multibranch pipeline project from a declarative job definition file
// (e.g., kept in a git repository).
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"gitlab.com/cidef/jenkins/multibranch"
)

const exitCode = 2

// These variables should be set during build time using "-X" ldflags.
var (
	version        = ""
	buildTimestamp = ""
	revision       = ""
)

func main() {
	var commands multibranch.Commands
	ctx := kong.Parse(&commands,
		kong.Description(
			"Generate the config.xml of a Jenkins multibranch pipeline project from a declarative job definition file (e.g., kept in a git repository).",
		),
		kong.Vars{
			"version": fmt.Sprintf("version %s (build on %s, git revision %s)", version, buildTimestamp, revision),
		},
		kong.UsageOnError(),
		kong.Writers(
			os.Stderr,
			os.Stderr,
		),
	)

	err := ctx.Run(&commands.Globals)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "error: %+v", err)
		ctx.Exit(exitCode)
	}
}
