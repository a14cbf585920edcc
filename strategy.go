package multibranch

import (
	"gitlab.com/tozd/go/errors"
)

const (
	defaultStrategyClass         = "jenkins.branch.DefaultBranchPropertyStrategy"
	namedExceptionsStrategyClass = "jenkins.branch.NamedExceptionsBranchPropertyStrategy"
	arrayListClass               = "java.util.Arrays$ArrayList"
	branchPropertyArrayClass     = "jenkins.branch.BranchProperty-array"
	noTriggerProperty            = "jenkins.branch.NoTriggerBranchProperty"
)

// buildStrategy emits the branch property strategy for one branch source.
//
// Three distinct shapes, which Jenkins deserializes differently:
// no "strategy" key at all gives the default strategy with an empty-list
// properties marker; a strategy without "exceptions" gives the default
// strategy with a single no-trigger property; a strategy with "exceptions"
// gives the named-exceptions strategy with one entry per branch name.
func (b *Builder) buildStrategy(parent *Element, gitSpec map[string]interface{}) errors.E {
	raw, ok := gitSpec["strategy"]
	if !ok {
		buildDefaultStrategy(parent)
		return nil
	}
	spec, ok := asMapping(raw)
	if !ok {
		return errors.New(`"strategy" is not a mapping`)
	}

	exceptionsRaw, ok := spec["exceptions"]
	if !ok {
		b.diag.Noticef("git source has a simple strategy")
		strategy := parent.SubElement("strategy")
		strategy.SetAttr("class", defaultStrategyClass)
		properties := strategy.SubElement("properties")
		properties.SetAttr("class", arrayListClass)
		array := properties.SubElement("a")
		array.SetAttr("class", branchPropertyArrayClass)
		array.SubElement(noTriggerProperty)
		return nil
	}

	b.diag.Noticef("git source has strategy exceptions")
	exceptions, ok := exceptionsRaw.([]interface{})
	if !ok {
		return errors.New(`"exceptions" is not a sequence`)
	}

	strategy := parent.SubElement("strategy")
	strategy.SetAttr("class", namedExceptionsStrategyClass)

	defaultProperties := strategy.SubElement("defaultProperties")
	defaultProperties.SetAttr("class", arrayListClass)
	array := defaultProperties.SubElement("a")
	array.SetAttr("class", branchPropertyArrayClass)
	array.SubElement(noTriggerProperty)

	namedExceptions := strategy.SubElement("namedExceptions")
	namedExceptions.SetAttr("class", arrayListClass)
	namedArray := namedExceptions.SubElement("a")
	namedArray.SetAttr("class", "jenkins.branch.NamedExceptionsBranchPropertyStrategy$Named-array")

	for _, exception := range exceptions {
		name := stringValue(exception)
		b.diag.Noticef(`strategy exception for branch "%s"`, name)
		named := namedArray.SubElement("jenkins.branch.NamedExceptionsBranchPropertyStrategy_-Named")
		props := named.SubElement("props")
		props.SetAttr("class", arrayListClass)
		propsArray := props.SubElement("a")
		propsArray.SetAttr("class", branchPropertyArrayClass)
		propsArray.SubElement(noTriggerProperty)
		named.SubElement("name").Text = name
	}

	return nil
}

// buildDefaultStrategy emits the strategy used when no strategy was
// configured. The empty-list marker is not the same thing as an ArrayList
// with zero entries.
func buildDefaultStrategy(parent *Element) {
	strategy := parent.SubElement("strategy")
	strategy.SetAttr("class", defaultStrategyClass)
	strategy.SubElement("properties").SetAttr("class", "empty-list")
}
