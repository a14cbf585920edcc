package multibranch

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// We do not use type=existingfile for Input or type=path for Output because we want relative paths.

// GenerateCommand describes parameters for the generate command.
type GenerateCommand struct {
	Input  string `short:"i" placeholder:"PATH" default:".jenkins-job.yml" help:"Where to load the job definition from. Can be \"-\" for stdin or an http(s):// URL. Default is \"${default}\"."` //nolint:lll
	Output string `short:"o" placeholder:"PATH" default:"-" help:"Where to save the generated config.xml to. Can be \"-\" for stdout. Default is \"${default}\"."`
}

// Run runs the generate command.
func (c *GenerateCommand) Run(globals *Globals) errors.E {
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

	var job Job
	err := yaml.Unmarshal(input, &job)
	if err != nil {
		return errors.Wrapf(err, `cannot unmarshal job definition from "%s"`, c.Input)
	}

	document, errE := NewBuilder(nil, nil).Build(job)
	if errE != nil {
		return errE
	}

	if c.Output != "-" {
		err = os.WriteFile(kong.ExpandPath(c.Output), document.Bytes(), fileMode)
	} else {
		_, err = os.Stdout.Write(document.Bytes())
	}
	if err != nil {
		return errors.Wrapf(err, `cannot write configuration to "%s"`, c.Output)
	}

	return nil
}

// readInput reads a job definition from a local path, standard input ("-"),
// or an HTTP(S) URL.
func readInput(input string) ([]byte, errors.E) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read job definition from stdin")
		}
		return data, nil
	}
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		data, errE := downloadFile(input)
		if errE != nil {
			return nil, errors.WithMessage(errE, "cannot download job definition")
		}
		return data, nil
	}
	data, err := os.ReadFile(kong.ExpandPath(input))
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read job definition from "%s"`, input)
	}
	return data, nil
}
