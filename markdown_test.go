package multibranch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFieldsDocumentation(t *testing.T) {
	t.Parallel()

	data, errE := parseFieldsDocumentation(fieldsDocumentation)
	assert.NoError(t, errE)
	assert.Equal(t, map[string]string{
		"timer-trigger":            "The timer spec for when the jobs should be triggered. Type: string",
		"env-properties":           "Environment variables set on the folder, passed through verbatim. Type: string",
		"periodic-folder-spec":     "The timer spec for when the repository should be checked for branches. Type: string",
		"periodic-folder-interval": "Interval for when the folder should be checked. Type: string",
		"prune-dead-branches":      "Whether dead branches upon check should result in their job being dropped. Type: boolean",
		"number-to-keep":           "How many builds should be kept (defaults to -1, all) Type: string",
		"days-to-keep":             "For how many days a build should be kept (defaults to -1, forever) Type: string",
		"scm":                      "List of SCM definitions; each entry is a mapping with a single git key. Type: list",
	}, data)
}

func TestParseGitSourceDocumentation(t *testing.T) {
	t.Parallel()

	data, errE := parseGitSourceDocumentation(fieldsDocumentation)
	assert.NoError(t, errE)
	assert.Len(t, data, 13)
	assert.Equal(t, "The git repository URL. Type: string", data["url"])
	assert.Equal(t, "The credentials id to use to connect to the repository URL. Type: string", data["credentials-id"])
	assert.Equal(t, "Which branches should be included (defaults to *, all) Type: string", data["includes"])
	assert.Equal(t, "Wipe out the workspace before build (defaults to true) Type: boolean", data["wipe-workspace"])
}
