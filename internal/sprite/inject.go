package sprite

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Inject places the sprite container into page's <body>, at the end for
// body-last and at the start for body-first. A page that already holds an
// element with the sprite's DOM id is returned unchanged.
func (s *Sprite) Inject(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	if hasID(doc, s.opts.CustomDomID) {
		return page, nil
	}

	// html.Parse always builds a <body>, even for a bare fragment.
	body := findElement(doc, "body")

	nodes, err := html.ParseFragment(strings.NewReader(s.Markup()), body)
	if err != nil {
		return nil, fmt.Errorf("parse sprite: %w", err)
	}

	switch s.opts.Inject {
	case InjectBodyFirst:
		first := body.FirstChild
		for _, n := range nodes {
			if first == nil {
				body.AppendChild(n)
				continue
			}
			body.InsertBefore(n, first)
		}
	default:
		for _, n := range nodes {
			body.AppendChild(n)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	return buf.Bytes(), nil
}

func hasID(n *html.Node, id string) bool {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return true
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasID(c, id) {
			return true
		}
	}
	return false
}
