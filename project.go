package multibranch

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"
)

const (
	multiBranchProjectClass = "org.jenkinsci.plugins.workflow.multibranch.WorkflowMultiBranchProject"
	branchProjectFactory    = "org.jenkinsci.plugins.workflow.multibranch.WorkflowBranchProjectFactory"
)

// Keys the multibranch project type understands. Anything else in the
// "multibranch" mapping is reported through diagnostics and otherwise
// ignored.
var knownProjectKeys = mapset.NewThreadUnsafeSet(
	"env-properties",
	"timer-trigger",
	"periodic-folder-spec",
	"periodic-folder-interval",
	"prune-dead-branches",
	"number-to-keep",
	"days-to-keep",
	"scm",
)

// Builder generates the config.xml document for a Jenkins multibranch
// pipeline project from a job definition. The zero value is not usable;
// use NewBuilder.
//
// A Builder holds no per-build state, so one Builder can be used for any
// number of Build calls, also concurrently.
type Builder struct {
	scm   SCMGenerator
	diag  Diagnostics
	newID func() string
}

// NewBuilder returns a Builder using the given SCM generator and
// diagnostics sink. A nil scm uses the built-in git SCM generator; a nil
// diag sends notices to standard error.
func NewBuilder(scm SCMGenerator, diag Diagnostics) *Builder {
	if scm == nil {
		scm = SCMGeneratorFunc(GitSCM)
	}
	if diag == nil {
		diag = StderrDiagnostics
	}
	return &Builder{
		scm:   scm,
		diag:  diag,
		newID: uuid.NewString,
	}
}

// Build assembles the project document for the job definition.
//
// When the job has no "multibranch" key the document is just the bare
// project element; Jenkins treats that as an unconfigured project and it is
// not an error here.
func (b *Builder) Build(job Job) (*Element, errors.E) {
	root := NewElement(multiBranchProjectClass)
	root.SetAttr("plugin", "workflow-multibranch")

	raw, ok := job["multibranch"]
	if !ok {
		return root, nil
	}
	project, ok := asMapping(raw)
	if !ok {
		return nil, errors.New(`"multibranch" is not a mapping`)
	}

	b.noticeUnknownKeys(project)

	b.buildProperties(root, project)
	buildViews(root)
	buildAppearance(root)
	buildOrphanedItemStrategy(root, project)
	errE := buildTriggers(root, project)
	if errE != nil {
		return nil, errE
	}
	errE = b.buildSources(root, project)
	if errE != nil {
		return nil, errE
	}
	buildFactory(root)

	return root, nil
}

func (b *Builder) noticeUnknownKeys(project map[string]interface{}) {
	keys := []string{}
	for key := range project {
		if !knownProjectKeys.Contains(key) {
			keys = append(keys, key)
		}
	}
	// Map iteration order is random; notices should not be.
	sort.Strings(keys)
	for _, key := range keys {
		b.diag.Noticef(`unknown configuration key "%s"`, key)
	}
}

// buildProperties emits the folder credentials provider placeholder and,
// when configured, the environment variables folder property. The
// env-properties value is passed through verbatim.
func (b *Builder) buildProperties(root *Element, project map[string]interface{}) {
	properties := root.SubElement("properties")

	provider := properties.SubElement("com.cloudbees.hudson.plugins.folder.properties.FolderCredentialsProvider_-FolderCredentialsProperty")
	provider.SetAttr("plugin", "cloudbees-folder")
	domainCredentialsMap := provider.SubElement("domainCredentialsMap")
	domainCredentialsMap.SetAttr("class", "hudson.util.CopyOnWriteMap$Hash")
	entry := domainCredentialsMap.SubElement("entry")
	domain := entry.SubElement("com.cloudbees.plugins.credentials.domains.Domain")
	domain.SetAttr("plugin", "credentials")
	domain.SubElement("specifications")
	entry.SubElement("java.util.concurrent.CopyOnWriteArrayList")

	if value, ok := project["env-properties"]; ok {
		envProperty := properties.SubElement("com.cloudbees.hudson.plugins.folder.properties.EnvVarsFolderProperty")
		envProperty.SetAttr("plugin", "cloudbees-folders-plus")
		envProperty.SubElement("properties").Text = stringValue(value)
	}
}

func buildViews(root *Element) {
	views := root.SubElement("views")
	allView := views.SubElement("hudson.model.AllView")
	owner := allView.SubElement("owner")
	owner.SetAttr("class", multiBranchProjectClass)
	owner.SetAttr("reference", "../../..")
	allView.SubElement("name").Text = "All"
	allView.SubElement("filterExecutors").Text = "false"
	allView.SubElement("filterQueue").Text = "false"
	allView.SubElement("properties").SetAttr("class", "hudson.model.View$PropertyList")
}

func buildAppearance(root *Element) {
	root.SubElement("viewsTabBar").SetAttr("class", "hudson.views.DefaultViewsTabBar")

	healthMetrics := root.SubElement("healthMetrics")
	metric := healthMetrics.SubElement("com.cloudbees.hudson.plugins.folder.health.WorstChildHealthMetric")
	metric.SetAttr("plugin", "cloudbees-folder")

	icon := root.SubElement("icon")
	icon.SetAttr("class", "com.cloudbees.hudson.plugins.folder.icons.StockFolderIcon")
	icon.SetAttr("plugin", "cloudbees-folder")
}

// buildOrphanedItemStrategy emits the retention policy for branches which
// disappeared upstream. pruneDeadBranches is only emitted when the key is
// configured; a key configured without a value still reads as false.
func buildOrphanedItemStrategy(root *Element, project map[string]interface{}) {
	strategy := root.SubElement("orphanedItemStrategy")
	strategy.SetAttr("class", "com.cloudbees.hudson.plugins.folder.computed.DefaultOrphanedItemStrategy")
	strategy.SetAttr("plugin", "cloudbees-folder")

	if value, ok := project["prune-dead-branches"]; ok {
		strategy.SubElement("pruneDeadBranches").Text = lowerBoolString(value)
	}

	strategy.SubElement("daysToKeep").Text = optionalString(project, "days-to-keep", "-1")
	strategy.SubElement("numToKeep").Text = optionalString(project, "number-to-keep", "-1")
}

// buildTriggers emits the optional timer trigger and the periodic folder
// trigger. The periodic folder trigger's spec and interval are required;
// there is deliberately no default for them.
func buildTriggers(root *Element, project map[string]interface{}) errors.E {
	triggers := root.SubElement("triggers")

	if value, ok := project["timer-trigger"]; ok {
		timerTrigger := triggers.SubElement("hudson.triggers.TimerTrigger")
		timerTrigger.SubElement("spec").Text = stringValue(value)
	}

	spec, errE := requireString(project, "periodic-folder-spec")
	if errE != nil {
		return errE
	}
	interval, errE := requireString(project, "periodic-folder-interval")
	if errE != nil {
		return errE
	}
	periodicTrigger := triggers.SubElement("com.cloudbees.hudson.plugins.folder.computed.PeriodicFolderTrigger")
	periodicTrigger.SetAttr("plugin", "cloudbees-folder")
	periodicTrigger.SubElement("spec").Text = spec
	periodicTrigger.SubElement("interval").Text = interval

	return nil
}

// buildSources emits one branch source per recognized scm entry, in input
// order. Entries which are not a mapping with a "git" key are skipped with
// a notice; the build carries on with the remaining entries.
func (b *Builder) buildSources(root *Element, project map[string]interface{}) errors.E {
	sources := root.SubElement("sources")
	sources.SetAttr("class", "jenkins.branch.MultiBranchProject$BranchSourceList")
	sources.SetAttr("plugin", "branch-api")
	data := sources.SubElement("data")

	if raw, ok := project["scm"]; ok {
		entries, ok := raw.([]interface{})
		if !ok {
			return errors.New(`"scm" is not a sequence`)
		}
		for i, entry := range entries {
			mapping, ok := asMapping(entry)
			if !ok {
				b.diag.Noticef("cannot process scm entry %d: not a mapping", i)
				continue
			}
			gitRaw, ok := mapping["git"]
			if !ok {
				b.diag.Noticef(`cannot process scm entry %d: no "git" key`, i)
				continue
			}
			gitSpec, ok := asMapping(gitRaw)
			if !ok {
				errE := errors.New("git source spec is not a mapping")
				errors.Details(errE)["entry"] = i
				return errE
			}

			branchSource := data.SubElement("jenkins.branch.BranchSource")
			errE := b.buildGitSource(branchSource, gitSpec)
			if errE != nil {
				return errE
			}
			errE = b.buildStrategy(branchSource, gitSpec)
			if errE != nil {
				return errE
			}
		}
	}

	owner := sources.SubElement("owner")
	owner.SetAttr("class", multiBranchProjectClass)
	owner.SetAttr("reference", "../..")

	return nil
}

func buildFactory(root *Element) {
	factory := root.SubElement("factory")
	factory.SetAttr("class", branchProjectFactory)
	owner := factory.SubElement("owner")
	owner.SetAttr("class", multiBranchProjectClass)
	owner.SetAttr("reference", "../..")
}
