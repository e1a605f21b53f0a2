package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

const nbsp = "\u00a0"

// NormalizeSpace replaces non-breaking spaces with regular spaces.
func NormalizeSpace(s string) string {
	return strings.ReplaceAll(s, nbsp, " ")
}

// CellTexts returns the trimmed text of each td directly under the given row,
// nested tables are not descended into.
func CellTexts(row *goquery.Selection) []string {
	cells := row.ChildrenFiltered("td")
	texts := make([]string, cells.Length())
	for i, n := range cells.Nodes {
		texts[i] = strings.TrimSpace(GetText(n))
	}
	return texts
}

// Lines splits text into trimmed, non-empty lines.
func Lines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// AbsoluteLinks rewrites single-quoted relative src and href attributes in
// raw markup so that they resolve against base instead of wherever the
// markup ends up being loaded.
func AbsoluteLinks(markup, base string) string {
	base = strings.TrimSuffix(base, "/")
	markup = strings.ReplaceAll(markup, "src='", "src='"+base+"/")
	markup = strings.ReplaceAll(markup, "href='", "href='"+base+"/")
	return markup
}
