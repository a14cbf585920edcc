package multibranch

import (
	"os"

	"gitlab.com/tozd/go/errors"
	yaml "gopkg.in/yaml.v3"
)

// We do not use type=existingfile for Input or type=path for Output because we want relative paths.

// FormatCommand describes parameters for the format command.
type FormatCommand struct {
	Input  string `short:"i" placeholder:"PATH" type:"string" required:"" help:"Where to load the job definition from. Can be \"-\" for stdin."`
	Output string `short:"o" placeholder:"PATH" type:"string" default:"-" help:"Where to save the job definition to. Can be the same as input to overwrite it. Default is \"${default}\"."` //nolint:lll
}

// Run runs the format command. It rewrites a job definition file, adding
// a documentation comment above every documented parameter.
func (c *FormatCommand) Run(globals *Globals) errors.E {
	if globals.ChangeTo != "" {
		err := os.Chdir(globals.ChangeTo)
		if err != nil {
			return errors.Wrapf(err, `cannot change current working directory to "%s"`, globals.ChangeTo)
		}
	}

	input, errE := readInput(c.Input)
	if errE != nil {
		return errE
	}

	var node yaml.Node
	err := yaml.Unmarshal(input, &node)
	if err != nil {
		return errors.Wrapf(err, `cannot unmarshal job definition from "%s"`, c.Input)
	}

	descriptions, errE := getFieldDescriptions()
	if errE != nil {
		return errE
	}
	gitDescriptions, errE := getGitSourceDescriptions()
	if errE != nil {
		return errE
	}
	for key, description := range gitDescriptions {
		if _, ok := descriptions[key]; !ok {
			descriptions[key] = description
		}
	}

	annotateYAML(&node, descriptions)

	return writeYAML(&node, c.Output)
}
