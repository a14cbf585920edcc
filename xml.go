package multibranch

import (
	"bytes"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

const xmlIndent = "  "

// Attr is a single XML attribute. Attributes are kept in a slice so that
// they serialize in insertion order.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the generated document: a tag, attributes in
// insertion order, optional text, and children in insertion order. Jenkins
// uses fully-qualified Java class names as tag names, so tags are plain
// strings and not validated.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// NewElement returns a new element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// SubElement creates a new element with the given tag, appends it as the
// last child, and returns it.
func (e *Element) SubElement(tag string) *Element {
	child := NewElement(tag)
	e.Children = append(e.Children, child)
	return child
}

// SetAttr sets an attribute, replacing an existing attribute with the same
// name, otherwise appending it.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Find returns the first direct child with the given tag, or nil.
func (e *Element) Find(tag string) *Element {
	for _, child := range e.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// Append appends child as the last child of e.
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func (e *Element) write(buffer *bytes.Buffer, depth int) {
	indent := strings.Repeat(xmlIndent, depth)
	buffer.WriteString(indent)
	buffer.WriteString("<")
	buffer.WriteString(e.Tag)
	for _, attr := range e.Attrs {
		buffer.WriteString(" ")
		buffer.WriteString(attr.Name)
		buffer.WriteString(`="`)
		buffer.WriteString(attrEscaper.Replace(attr.Value))
		buffer.WriteString(`"`)
	}

	if e.Text == "" && len(e.Children) == 0 {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")
	if e.Text != "" {
		buffer.WriteString(textEscaper.Replace(e.Text))
	}
	if len(e.Children) > 0 {
		buffer.WriteString("\n")
		for _, child := range e.Children {
			child.write(buffer, depth+1)
		}
		buffer.WriteString(indent)
	}
	buffer.WriteString("</")
	buffer.WriteString(e.Tag)
	buffer.WriteString(">\n")
}

// Bytes serializes the element as a complete XML document: XML declaration,
// two-space indent, attributes in insertion order, self-closing tags for
// elements with no text and no children.
func (e *Element) Bytes() []byte {
	buffer := bytes.Buffer{}
	buffer.WriteString(xmlDeclaration)
	e.write(&buffer, 0)
	return buffer.Bytes()
}

// Encode writes the serialized document to writer.
func (e *Element) Encode(writer io.Writer) errors.E {
	_, err := writer.Write(e.Bytes())
	if err != nil {
		return errors.Wrap(err, "cannot write XML document")
	}
	return nil
}
