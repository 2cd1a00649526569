package components

import (
	"fmt"
	"io/fs"

	"github.com/mabego/springai-web/internal/buildconfig"
)

const (
	BaseLayout   = "html/base.layout.tmpl"
	PartialsGlob = "html/*.partial.tmpl"
)

// NewResolver chains one resolver per entry of the build config.
func NewResolver(cfg *buildconfig.Config) Resolver {
	chain := Chain{}
	for _, r := range cfg.Components.Resolvers {
		chain = append(chain, NewAntDesign(r.Prefix, string(r.ImportStyle)))
	}
	return chain
}

// View is a page together with the components it is rendered with.
type View struct {
	Page    string
	Imports []Component
}

// LoadView resolves the components page needs. The layout and partials are
// rendered with every page, so their references count too. A missing page
// is reported with an error wrapping fs.ErrNotExist.
func LoadView(fsys fs.FS, cfg *buildconfig.Config, page string) (View, error) {
	src, err := fs.ReadFile(fsys, page)
	if err != nil {
		return View{}, err
	}

	shared, err := fs.Glob(fsys, PartialsGlob)
	if err != nil {
		return View{}, err
	}
	for _, name := range append([]string{BaseLayout}, shared...) {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return View{}, fmt.Errorf("shared template: %w", err)
		}
		src = append(src, b...)
	}

	imports, err := Imports(fsys, cfg.Components.Dirs, NewResolver(cfg), src)
	if err != nil {
		return View{}, fmt.Errorf("resolve components for %s: %w", page, err)
	}

	return View{Page: page, Imports: imports}, nil
}

// Patterns lists the files to parse for v: layout, partials, component
// partials and finally the page.
func (v View) Patterns() []string {
	patterns := []string{BaseLayout, PartialsGlob}
	patterns = append(patterns, Files(v.Imports)...)
	return append(patterns, v.Page)
}
