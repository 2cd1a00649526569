// Package components resolves UI-library component names used by templates
// to the partials that implement them, so pages need no explicit includes.
package components

import (
	"path"
	"strings"
	"unicode"
)

// Component is the outcome of resolving one referenced name.
type Component struct {
	// Ref is the name as written in the template, e.g. "a-form-item".
	Ref string
	// Name is the library component name, e.g. "FormItem".
	Name string
	// File is the partial that defines Ref, relative to the component dir.
	File string
	// SideEffects lists stylesheets the page must link for this component.
	SideEffects []string
}

type Resolver interface {
	Resolve(ref string) (Component, bool)
}

// Sub-components whose styles ship with a parent component.
var parents = map[string]string{
	"FormItem":            "Form",
	"InputPassword":       "Input",
	"InputSearch":         "Input",
	"Textarea":            "Input",
	"LayoutHeader":        "Layout",
	"LayoutContent":       "Layout",
	"LayoutFooter":        "Layout",
	"LayoutSider":         "Layout",
	"MenuItem":            "Menu",
	"ListItem":            "List",
	"ListItemMeta":        "List",
	"TypographyText":      "Typography",
	"TypographyTitle":     "Typography",
	"TypographyParagraph": "Typography",
}

// AntDesign resolves names carrying the library prefix, in either
// PascalCase ("AButton") or kebab-case ("a-button").
type AntDesign struct {
	Prefix      string
	ImportStyle string
}

func NewAntDesign(prefix, importStyle string) *AntDesign {
	if prefix == "" {
		prefix = "A"
	}
	return &AntDesign{Prefix: prefix, ImportStyle: importStyle}
}

func (r *AntDesign) Resolve(ref string) (Component, bool) {
	pascal := ref
	if strings.Contains(ref, "-") || isLowerStart(ref) {
		pascal = Pascal(ref)
	}

	if !strings.HasPrefix(pascal, r.Prefix) {
		return Component{}, false
	}
	name := strings.TrimPrefix(pascal, r.Prefix)
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return Component{}, false
	}

	c := Component{
		Ref:  ref,
		Name: name,
		File: Kebab(name) + ".tmpl",
	}

	if r.ImportStyle != "" {
		parent := name
		if p, ok := parents[name]; ok {
			parent = p
		}
		c.SideEffects = []string{path.Join("/static/css/components", Kebab(parent)+"."+r.ImportStyle)}
	}

	return c, true
}

// Chain tries each resolver in turn.
type Chain []Resolver

func (c Chain) Resolve(ref string) (Component, bool) {
	for _, r := range c {
		if comp, ok := r.Resolve(ref); ok {
			return comp, true
		}
	}
	return Component{}, false
}

// Pascal converts "a-form-item" to "AFormItem".
func Pascal(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '-' || r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Kebab converts "FormItem" to "form-item".
func Kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLowerStart(s string) bool {
	return s != "" && unicode.IsLower(rune(s[0]))
}
