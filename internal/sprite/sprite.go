// Package sprite turns a directory of SVG icons into a single inline sprite of
// <symbol> elements and injects it into rendered pages.
package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	InjectBodyLast  = "body-last"
	InjectBodyFirst = "body-first"
)

var (
	ErrNoSVG       = errors.New("file has no <svg> element")
	ErrDuplicateID = errors.New("duplicate symbol id")
)

type Options struct {
	SymbolID    string
	Inject      string
	CustomDomID string
}

type Symbol struct {
	ID     string
	Source string
	Markup string
}

type Sprite struct {
	Symbols []Symbol
	opts    Options
}

// SymbolID expands a format such as "icon-[dir]-[name]" for an icon path
// relative to its icon directory. Nested directories are joined with "-" and
// an empty [dir] collapses the separator that follows it.
func SymbolID(format, rel string) string {
	rel = path.Clean(strings.TrimPrefix(rel, "/"))
	name := strings.TrimSuffix(rel, path.Ext(rel))

	id := format
	if strings.Contains(id, "[dir]") {
		dir, file := path.Split(name)
		dir = strings.ReplaceAll(strings.Trim(dir, "/"), "/", "-")

		id = strings.ReplaceAll(id, "[dir]", dir)
		if dir == "" {
			id = strings.Replace(id, "--", "-", 1)
		}
		name = file
	}

	return strings.ReplaceAll(id, "[name]", name)
}

// Build walks every icon directory of fsys in lexical order and converts each
// .svg file into a symbol.
func Build(fsys fs.FS, dirs []string, opts Options) (*Sprite, error) {
	s := &Sprite{opts: opts}
	seen := make(map[string]string)

	for _, dir := range dirs {
		dir = path.Clean(dir)

		err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(path.Ext(p), ".svg") {
				return nil
			}

			rel := strings.TrimPrefix(p, dir+"/")
			id := SymbolID(opts.SymbolID, rel)

			if prev, dup := seen[id]; dup {
				return fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateID, id, prev, p)
			}
			seen[id] = p

			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return err
			}

			markup, err := symbolize(data, id)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}

			s.Symbols = append(s.Symbols, Symbol{ID: id, Source: p, Markup: markup})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("build sprite: %w", err)
		}
	}

	return s, nil
}

// Markup returns the hidden sprite container with all symbols.
func (s *Sprite) Markup() string {
	var b strings.Builder

	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"`)
	b.WriteString(` style="position: absolute; width: 0; height: 0" id="`)
	b.WriteString(html.EscapeString(s.opts.CustomDomID))
	b.WriteString(`">`)
	for _, sym := range s.Symbols {
		b.WriteString(sym.Markup)
	}
	b.WriteString(`</svg>`)

	return b.String()
}

// Attributes of the source <svg> that do not belong on a <symbol>.
func dropAttr(a html.Attribute) bool {
	if a.Namespace == "xmlns" || a.Key == "xmlns" {
		return true
	}
	if a.Namespace != "" {
		return false
	}
	switch a.Key {
	case "id", "width", "height", "version", "x", "y":
		return true
	}
	return false
}

func symbolize(data []byte, id string) (string, error) {
	nodes, err := html.ParseFragment(bytes.NewReader(data), bodyContext())
	if err != nil {
		return "", err
	}

	var svg *html.Node
	for _, n := range nodes {
		if svg = findElement(n, "svg"); svg != nil {
			break
		}
	}
	if svg == nil {
		return "", ErrNoSVG
	}

	symbol := &html.Node{
		Type:      html.ElementNode,
		Data:      "symbol",
		Namespace: "svg",
		Attr:      []html.Attribute{{Key: "id", Val: id}},
	}
	for _, a := range svg.Attr {
		if !dropAttr(a) {
			symbol.Attr = append(symbol.Attr, a)
		}
	}

	for c := svg.FirstChild; c != nil; {
		next := c.NextSibling
		svg.RemoveChild(c)
		symbol.AppendChild(c)
		c = next
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, symbol); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}
