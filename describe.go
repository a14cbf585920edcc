package multibranch

import (
	"os"

	"gitlab.com/tozd/go/errors"
)

// DescribeCommand describes parameters for the describe command.
type DescribeCommand struct{}

// Run runs the describe command.
func (c *DescribeCommand) Run(globals *Globals) errors.E {
	jobDescriptions, errE := getFieldDescriptions()
	if errE != nil {
		return errE
	}
	gitDescriptions, errE := getGitSourceDescriptions()
	if errE != nil {
		return errE
	}

	output := "Job parameters:\n\n" + formatDescriptions(jobDescriptions) +
		"\nGit source parameters:\n\n" + formatDescriptions(gitDescriptions)

	_, err := os.Stdout.WriteString(output)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
