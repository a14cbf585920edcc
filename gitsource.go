package multibranch

import (
	"gitlab.com/tozd/go/errors"
)

// SCMGenerator produces the standard SCM document for a git source spec.
// The returned element is a container whose "scm" child (if any) holds the
// full SCM configuration; the builder only splices the "extensions" subtree
// out of it and discards the rest.
type SCMGenerator interface {
	GenerateSCM(spec map[string]interface{}) (*Element, errors.E)
}

// SCMGeneratorFunc adapts a function to the SCMGenerator interface.
type SCMGeneratorFunc func(spec map[string]interface{}) (*Element, errors.E)

func (f SCMGeneratorFunc) GenerateSCM(spec map[string]interface{}) (*Element, errors.E) {
	return f(spec)
}

// buildGitSource emits one git branch source under parent. Every source
// gets a fresh random id; ids are not reproducible across runs.
func (b *Builder) buildGitSource(parent *Element, spec map[string]interface{}) errors.E {
	source := parent.SubElement("source")
	source.SetAttr("class", "jenkins.plugins.git.GitSCMSource")
	source.SetAttr("plugin", "git")

	url, errE := requireString(spec, "url")
	if errE != nil {
		return errE
	}
	credentialsID, errE := requireString(spec, "credentials-id")
	if errE != nil {
		return errE
	}

	ignoreOnPush := "true"
	if value, ok := spec["ignore-on-push-notifications"]; ok {
		ignoreOnPush = lowerBoolString(value)
	}

	source.SubElement("id").Text = b.newID()
	source.SubElement("remote").Text = url
	source.SubElement("credentialsId").Text = credentialsID
	source.SubElement("ignoreOnPushNotifications").Text = ignoreOnPush
	source.SubElement("includes").Text = optionalString(spec, "includes", "*")

	// An unconfigured excludes still shows up as an empty element. Only the
	// presence of text distinguishes "not configured" from "configured
	// empty"; the element itself is always there.
	excludes := source.SubElement("excludes")
	if value, ok := spec["excludes"]; ok {
		excludes.Text = stringValue(value)
	}

	generated, errE := b.scm.GenerateSCM(spec)
	if errE != nil {
		return errE
	}
	// Splice the extensions subtree out of the generated SCM document and
	// drop everything else. A generated document without scm or without
	// extensions is not an error.
	if generated != nil {
		if scmNode := generated.Find("scm"); scmNode != nil {
			if extensions := scmNode.Find("extensions"); extensions != nil {
				source.Append(extensions)
			}
		}
	}

	return nil
}
