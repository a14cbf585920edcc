package multibranch

import (
	"gitlab.com/tozd/go/errors"
)

const gitExtensionsPrefix = "hudson.plugins.git.extensions.impl."

// GitSCM is the built-in SCMGenerator. It produces a standard git SCM
// document for a git source spec: remote config, branch spec, and an
// extensions block for the checkout-related options. It is intentionally a
// small subset of the full git plugin option surface; a richer generator
// can be plugged in through the SCMGenerator interface.
func GitSCM(spec map[string]interface{}) (*Element, errors.E) {
	url, errE := requireString(spec, "url")
	if errE != nil {
		return nil, errE
	}

	container := NewElement("generated")
	scm := container.SubElement("scm")
	scm.SetAttr("class", "hudson.plugins.git.GitSCM")
	scm.SetAttr("plugin", "git")
	scm.SubElement("configVersion").Text = "2"

	userRemoteConfigs := scm.SubElement("userRemoteConfigs")
	remoteConfig := userRemoteConfigs.SubElement("hudson.plugins.git.UserRemoteConfig")
	remoteConfig.SubElement("url").Text = url
	if value, ok := spec["credentials-id"]; ok {
		remoteConfig.SubElement("credentialsId").Text = stringValue(value)
	}

	branches := scm.SubElement("branches")
	branchSpec := branches.SubElement("hudson.plugins.git.BranchSpec")
	branchSpec.SubElement("name").Text = "**"

	buildGitExtensions(scm, spec)

	return container, nil
}

// buildGitExtensions emits the checkout extensions block. Options not
// listed here are ignored, not rejected; the git source spec carries keys
// for the branch source as well.
func buildGitExtensions(scm *Element, spec map[string]interface{}) {
	extensions := scm.SubElement("extensions")

	if value, ok := spec["clean"]; ok {
		if clean, ok := asMapping(value); ok {
			if lowerBoolString(clean["before"]) == "true" {
				extensions.SubElement(gitExtensionsPrefix + "CleanBeforeCheckout")
			}
			if lowerBoolString(clean["after"]) == "true" {
				extensions.SubElement(gitExtensionsPrefix + "CleanCheckout")
			}
		}
	}

	if value, ok := spec["shallow-clone"]; ok && lowerBoolString(value) == "true" {
		cloneOption := extensions.SubElement(gitExtensionsPrefix + "CloneOption")
		cloneOption.SubElement("shallow").Text = "true"
		cloneOption.SubElement("depth").Text = optionalString(spec, "depth", "1")
	}

	// Wiping the workspace before checkout is on unless switched off.
	wipeWorkspace := "true"
	if value, ok := spec["wipe-workspace"]; ok {
		wipeWorkspace = lowerBoolString(value)
	}
	if wipeWorkspace == "true" {
		extensions.SubElement(gitExtensionsPrefix + "WipeWorkspace")
	}

	if value, ok := spec["prune"]; ok && lowerBoolString(value) == "true" {
		extensions.SubElement(gitExtensionsPrefix + "PruneStaleBranch")
	}

	if value, ok := spec["timeout"]; ok {
		checkoutOption := extensions.SubElement(gitExtensionsPrefix + "CheckoutOption")
		checkoutOption.SubElement("timeout").Text = stringValue(value)
	}

	if value, ok := spec["local-branch"]; ok {
		localBranch := extensions.SubElement(gitExtensionsPrefix + "LocalBranch")
		localBranch.SubElement("localBranch").Text = stringValue(value)
	}

	if value, ok := spec["scm-name"]; ok {
		scmName := extensions.SubElement(gitExtensionsPrefix + "ScmName")
		scmName.SubElement("name").Text = stringValue(value)
	}
}
