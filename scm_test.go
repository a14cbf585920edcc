package multibranch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func extensionTags(t *testing.T, container *Element) []string {
	t.Helper()

	scm := container.Find("scm")
	require.NotNil(t, scm)
	extensions := scm.Find("extensions")
	require.NotNil(t, extensions)
	tags := []string{}
	for _, child := range extensions.Children {
		tags = append(tags, child.Tag)
	}
	return tags
}

func TestGitSCMDefaults(t *testing.T) {
	t.Parallel()

	container, errE := GitSCM(gitSpec())
	require.NoError(t, errE)

	scm := container.Find("scm")
	require.NotNil(t, scm)
	assert.Equal(t, []Attr{{"class", "hudson.plugins.git.GitSCM"}, {"plugin", "git"}}, scm.Attrs)
	assert.Equal(t, "2", scm.Find("configVersion").Text)

	remoteConfig := scm.Find("userRemoteConfigs").Find("hudson.plugins.git.UserRemoteConfig")
	require.NotNil(t, remoteConfig)
	assert.Equal(t, "https://example.com/team/widget.git", remoteConfig.Find("url").Text)
	assert.Equal(t, "jenkins-widget", remoteConfig.Find("credentialsId").Text)

	branchSpec := scm.Find("branches").Find("hudson.plugins.git.BranchSpec")
	require.NotNil(t, branchSpec)
	assert.Equal(t, "**", branchSpec.Find("name").Text)

	// Workspace wiping is the only extension on by default.
	assert.Equal(t, []string{"hudson.plugins.git.extensions.impl.WipeWorkspace"}, extensionTags(t, container))
}

func TestGitSCMRequiresURL(t *testing.T) {
	t.Parallel()

	_, errE := GitSCM(map[string]interface{}{"credentials-id": "c1"})
	require.Error(t, errE)
	assert.EqualError(t, errE, "missing required configuration field")
	assert.Equal(t, "url", errors.Details(errE)["field"])
}

func TestGitSCMExtensions(t *testing.T) {
	t.Parallel()

	spec := gitSpec()
	spec["clean"] = map[string]interface{}{"before": true, "after": true}
	spec["shallow-clone"] = true
	spec["depth"] = 5
	spec["wipe-workspace"] = false
	spec["prune"] = true
	spec["timeout"] = "20"
	spec["local-branch"] = "main"
	spec["scm-name"] = "widget"

	container, errE := GitSCM(spec)
	require.NoError(t, errE)

	assert.Equal(t, []string{
		"hudson.plugins.git.extensions.impl.CleanBeforeCheckout",
		"hudson.plugins.git.extensions.impl.CleanCheckout",
		"hudson.plugins.git.extensions.impl.CloneOption",
		"hudson.plugins.git.extensions.impl.PruneStaleBranch",
		"hudson.plugins.git.extensions.impl.CheckoutOption",
		"hudson.plugins.git.extensions.impl.LocalBranch",
		"hudson.plugins.git.extensions.impl.ScmName",
	}, extensionTags(t, container))

	extensions := container.Find("scm").Find("extensions")
	cloneOption := extensions.Find("hudson.plugins.git.extensions.impl.CloneOption")
	assert.Equal(t, "true", cloneOption.Find("shallow").Text)
	assert.Equal(t, "5", cloneOption.Find("depth").Text)
	assert.Equal(t, "20", extensions.Find("hudson.plugins.git.extensions.impl.CheckoutOption").Find("timeout").Text)
	assert.Equal(t, "main", extensions.Find("hudson.plugins.git.extensions.impl.LocalBranch").Find("localBranch").Text)
	assert.Equal(t, "widget", extensions.Find("hudson.plugins.git.extensions.impl.ScmName").Find("name").Text)
}

func TestGitSCMUnknownKeysIgnored(t *testing.T) {
	t.Parallel()

	spec := gitSpec()
	spec["strategy"] = map[string]interface{}{"exceptions": []interface{}{"main"}}
	spec["submodule"] = map[string]interface{}{"recursive": true}

	container, errE := GitSCM(spec)
	require.NoError(t, errE)
	assert.Equal(t, []string{"hudson.plugins.git.extensions.impl.WipeWorkspace"}, extensionTags(t, container))
}
