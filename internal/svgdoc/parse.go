package svgdoc

import (
	"regexp"
	"strings"
)

var (
	paramPattern = regexp.MustCompile(`^<param\s+name="([^"]*)"\s+value="([^"]*)"\s*/>`)

	attrUnescaper = strings.NewReplacer(
		"&quot;", `"`,
		"&lt;", "<",
		"&amp;", "&",
	)
)

// Parse splits serialized file content back into a Document: the first
// <defs> block made up entirely of <param> elements is lifted out as the
// variable list, and the remaining markup is returned as-is. Content
// without such a block parses as a document with no variables. Parse is the
// inverse of Render, so a fetched snapshot compares clean against the
// document it was rendered from.
func Parse(content string) Document {
	open := strings.Index(content, "<defs>")
	if open < 0 {
		return Document{Markup: content}
	}
	end := strings.Index(content[open:], "</defs>")
	if end < 0 {
		return Document{Markup: content}
	}
	end += open

	inner := content[open+len("<defs>") : end]
	variables, ok := parseParams(inner)
	if !ok {
		// A defs block with anything but params belongs to the drawing.
		return Document{Markup: content}
	}

	markup := content[:open] + content[end+len("</defs>"):]
	return Document{Markup: markup, Variables: variables}
}

func parseParams(inner string) ([]Variable, bool) {
	rest := strings.TrimSpace(inner)
	var variables []Variable
	for rest != "" {
		match := paramPattern.FindStringSubmatch(rest)
		if match == nil {
			return nil, false
		}
		variables = append(variables, Variable{
			Name:  attrUnescaper.Replace(match[1]),
			Value: attrUnescaper.Replace(match[2]),
		})
		rest = strings.TrimSpace(rest[len(match[0]):])
	}
	return variables, true
}
