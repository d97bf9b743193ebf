// Package svgdoc defines the parametric SVG document model and the
// serialization used when uploading a document to the remote store.
package svgdoc

import (
	"fmt"
	"strings"
)

// Variable is a single named value referenced by the markup. Variables are
// immutable; edits replace the value wholesale.
type Variable struct {
	Name  string
	Value string
}

// Document pairs raw SVG markup with its ordered variable list.
type Document struct {
	Markup    string
	Variables []Variable
}

// Equal reports full structural equality. Variable order is significant.
func (d Document) Equal(other Document) bool {
	if d.Markup != other.Markup {
		return false
	}
	if len(d.Variables) != len(other.Variables) {
		return false
	}
	for i, v := range d.Variables {
		if v != other.Variables[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the document.
func (d Document) Clone() Document {
	dup := Document{Markup: d.Markup}
	if len(d.Variables) > 0 {
		dup.Variables = make([]Variable, len(d.Variables))
		copy(dup.Variables, d.Variables)
	}
	return dup
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	`"`, "&quot;",
)

// Render produces the file content uploaded to the remote store: the markup
// with a <defs> block of <param> elements injected after the opening <svg>
// tag. A document without variables renders as its markup unchanged.
func Render(doc Document) (string, error) {
	if len(doc.Variables) == 0 {
		return doc.Markup, nil
	}

	open := strings.Index(doc.Markup, "<svg")
	if open < 0 {
		return "", fmt.Errorf("markup has no <svg> element")
	}
	end := strings.IndexRune(doc.Markup[open:], '>')
	if end < 0 {
		return "", fmt.Errorf("markup has an unterminated <svg> tag")
	}
	end += open

	var defs strings.Builder
	defs.WriteString("<defs>")
	for _, v := range doc.Variables {
		fmt.Fprintf(&defs, `<param name="%s" value="%s" />`,
			attrEscaper.Replace(v.Name), attrEscaper.Replace(v.Value))
	}
	defs.WriteString("</defs>")

	// A self-closing root tag has to be expanded before anything can be
	// injected into it.
	if strings.HasSuffix(strings.TrimSpace(doc.Markup[open:end]), "/") {
		openTag := strings.TrimSpace(doc.Markup[open:end])
		openTag = strings.TrimSuffix(openTag, "/")
		openTag = strings.TrimRight(openTag, " ")
		return doc.Markup[:open] + openTag + ">" + defs.String() + "</svg>" + doc.Markup[end+1:], nil
	}

	return doc.Markup[:end+1] + defs.String() + doc.Markup[end+1:], nil
}
