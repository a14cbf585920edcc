package multibranch

import (
	"bytes"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/mitchellh/go-wordwrap"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	maxCommentWidth = 80
	fileMode        = 0o600
	yamlIndentSize  = 2
)

// formatDescriptions formats parameter descriptions as a block of text,
// one wrapped "name: description" paragraph per parameter, sorted by name.
func formatDescriptions(descriptions map[string]string) string {
	keys := []string{}
	for key := range descriptions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	output := ""
	for _, key := range keys {
		description := key + ": " + descriptions[key] + "\n"
		output += wordwrap.WrapString(description, maxCommentWidth)
	}
	return output
}

// annotateYAML sets a head comment on every mapping key which has a
// description and no comment yet, recursing through nested mappings and
// sequences. Existing comments are left alone.
func annotateYAML(node *yaml.Node, descriptions map[string]string) {
	if node.Kind != yaml.MappingNode {
		for _, content := range node.Content {
			annotateYAML(content, descriptions)
		}
		return
	}

	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		description, ok := descriptions[key]
		if ok && description != "" && node.Content[i].HeadComment == "" {
			node.Content[i].HeadComment = wordwrap.WrapString(description, maxCommentWidth)
		}

		// And recurse at the same time.
		annotateYAML(node.Content[i+1], descriptions)
	}
}

// writeYAML writes YAML node to output file path.
// output can be "-" to save it to stdout.
//
// Comments in the YAML node are written out as well.
func writeYAML(node *yaml.Node, output string) errors.E {
	buffer := bytes.Buffer{}

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndentSize)
	err := encoder.Encode(node)
	if err != nil {
		return errors.Wrap(err, `cannot marshal job definition`)
	}
	err = encoder.Close()
	if err != nil {
		return errors.Wrap(err, `cannot marshal job definition`)
	}

	if output != "-" {
		err = os.WriteFile(kong.ExpandPath(output), buffer.Bytes(), fileMode)
	} else {
		_, err = os.Stdout.Write(buffer.Bytes())
	}
	if err != nil {
		return errors.Wrapf(err, `cannot write job definition to "%s"`, output)
	}

	return nil
}
