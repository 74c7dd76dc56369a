package playwright

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DOMNode is one element of a DOM tree snapshot.
type DOMNode struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Text       string            `json:"text,omitempty"`
	Children   []*DOMNode        `json:"children,omitempty"`
	Truncated  bool              `json:"truncated,omitempty"`
}

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// BuildDOMTree parses markup into a tree of at most depth levels. A full document is rooted at
// <html>; a fragment (the outer HTML of one element) is rooted at that element.
func BuildDOMTree(markup string, depth int, fragment bool) (*DOMNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := doc.Find("html").First()
	if fragment {
		// The parser wraps fragments in html/head/body.
		root = doc.Find("body").Children().First()
		if root.Length() == 0 {
			root = doc.Find("head").Children().First()
		}
	}
	if root.Length() == 0 {
		return nil, fmt.Errorf("parse html: no element found")
	}

	if depth < 1 {
		depth = 1
	}
	return convert(root.Nodes[0], 1, depth), nil
}

func convert(n *html.Node, level, depth int) *DOMNode {
	node := &DOMNode{Tag: strings.ToLower(n.Data)}

	if len(n.Attr) > 0 {
		node.Attributes = make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			node.Attributes[a.Key] = a.Val
		}
	}

	var text []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.Join(strings.Fields(c.Data), " "); t != "" {
				text = append(text, t)
			}
		case html.ElementNode:
			if skippedElements[strings.ToLower(c.Data)] {
				continue
			}
			if level >= depth {
				node.Truncated = true
				continue
			}
			node.Children = append(node.Children, convert(c, level+1, depth))
		}
	}
	node.Text = strings.Join(text, " ")

	return node
}
