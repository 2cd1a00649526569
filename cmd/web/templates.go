package main

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"

	"github.com/mabego/springai-web/internal/buildconfig"
	"github.com/mabego/springai-web/internal/components"
)

var ErrNoTmpl = errors.New("template does not exist")

// templateData holds dynamic data to pass to HTML templates.
type templateData struct {
	Title       string
	Route       string
	HasToken    bool
	Nickname    string
	CurrentYear int
	Flash       string
	CSRFToken   string
	Stylesheets []string
	LoginHref   string
	ChatHref    string
	Form        any
}

// view is a parsed template set plus the stylesheets its components need.
type view struct {
	ts          *template.Template
	stylesheets []string
}

// viewCache parses a view on its first request and keeps it afterwards.
type viewCache struct {
	fsys fs.FS
	cfg  *buildconfig.Config

	mu    sync.Mutex
	views map[string]*view
}

func newViewCache(fsys fs.FS, cfg *buildconfig.Config) *viewCache {
	return &viewCache{
		fsys:  fsys,
		cfg:   cfg,
		views: make(map[string]*view),
	}
}

// Get returns the template set for an aliased view path such as
// "@/views/chat.page.tmpl". Failed loads are not cached.
func (c *viewCache) Get(name string) (*view, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.views[name]; ok {
		return v, nil
	}

	v, err := c.load(c.cfg.ResolveAlias(name))
	if err != nil {
		return nil, err
	}

	c.views[name] = v
	return v, nil
}

// Len reports how many views have been loaded so far.
func (c *viewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.views)
}

func (c *viewCache) load(page string) (*view, error) {
	if _, err := fs.Stat(c.fsys, page); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoTmpl, page)
	}

	v, err := components.LoadView(c.fsys, c.cfg, page)
	if err != nil {
		return nil, err
	}

	ts, err := template.New(path.Base(page)).Funcs(functions).ParseFS(c.fsys, v.Patterns()...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", page, err)
	}

	stylesheets := []string{cssHref(c.cfg.CSS.Entry)}
	stylesheets = append(stylesheets, components.SideEffects(v.Imports)...)

	return &view{ts: ts, stylesheets: stylesheets}, nil
}

func cssHref(entry string) string {
	return "/" + path.Clean(entry)
}

// icon references a sprite symbol by its id.
func icon(id, class string) template.HTML {
	return template.HTML(fmt.Sprintf(`<svg class="%s" aria-hidden="true"><use href="#%s"></use></svg>`,
		template.HTMLEscapeString(class), template.HTMLEscapeString(id)))
}

var functions = template.FuncMap{"icon": icon}
