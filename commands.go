package multibranch

import (
	"github.com/alecthomas/kong"
)

// Globals describes top-level (global) flags.
type Globals struct {
	ChangeTo string           `short:"C" placeholder:"PATH" type:"existingdir" env:"CI_PROJECT_DIR" help:"Run as if the program was started in PATH instead of the current working directory. Environment variable: ${env}"` //nolint:lll
	Version  kong.VersionFlag `short:"V" help:"Show program's version and exit."`
}

// Commands is used as configuration for Kong command-line parser.
//
// Besides commands themselves it also contains top-level (global) flags.
type Commands struct {
	Globals

	Generate GenerateCommand `cmd:"" help:"Generate a Jenkins multibranch pipeline config.xml from a job definition file."`
	Format   FormatCommand   `cmd:"" help:"Reformat a job definition file, adding documentation comments."`
	Describe DescribeCommand `cmd:"" help:"Describe supported job definition parameters."`
}
