// Package router holds the two-route table of the web front, the guard that
// keeps the chat view behind a stored token, and hash-location parsing.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

const (
	LoginPath = "/"
	ChatPath  = "/chat"

	// TokenKey is the storage key whose presence marks a client as logged in.
	TokenKey = "authToken"

	LoginTitle = "Spring AI 机器人 - 登录"
	ChatTitle  = "Spring AI 机器人首页"
)

var ErrNoRoute = errors.New("no matching route")

type Route struct {
	Name          string
	Path          string
	View          string
	Title         string
	RequiresToken bool
}

// DefaultRoutes is the route table of the site.
func DefaultRoutes() []Route {
	return []Route{
		{
			Name:  "login",
			Path:  LoginPath,
			View:  "@/views/login.page.tmpl",
			Title: LoginTitle,
		},
		{
			Name:          "chat",
			Path:          ChatPath,
			View:          "@/views/chat.page.tmpl",
			Title:         ChatTitle,
			RequiresToken: true,
		},
	}
}

// Mode selects how a URL carries the current view.
type Mode int

const (
	HashMode Mode = iota
	HistoryMode
)

type Router struct {
	mode   Mode
	routes []Route
	byPath map[string]int
}

func New(mode Mode, routes []Route) (*Router, error) {
	r := &Router{
		mode:   mode,
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
	}

	for _, rt := range routes {
		p := cleanPath(rt.Path)
		if _, dup := r.byPath[p]; dup {
			return nil, fmt.Errorf("duplicate route path %q", p)
		}
		rt.Path = p
		r.byPath[p] = len(r.routes)
		r.routes = append(r.routes, rt)
	}

	if _, ok := r.byPath[LoginPath]; !ok {
		return nil, fmt.Errorf("route table has no %q route", LoginPath)
	}

	return r, nil
}

// Routes returns a copy of the route table in declaration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Match looks up the route for an already extracted path.
func (r *Router) Match(p string) (Route, bool) {
	i, ok := r.byPath[cleanPath(p)]
	if !ok {
		return Route{}, false
	}
	return r.routes[i], true
}

// Location extracts the view path from a URL. In hash mode the path lives in
// the fragment ("/#/chat?x=1" is "/chat"); an empty fragment is the root.
func (r *Router) Location(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}

	if r.mode == HistoryMode {
		return cleanPath(u.Path), nil
	}

	frag := u.Fragment
	if i := strings.IndexAny(frag, "?#"); i >= 0 {
		frag = frag[:i]
	}

	return cleanPath(frag), nil
}

// Href renders the link for a view path in the router's mode.
func (r *Router) Href(p string) string {
	p = cleanPath(p)
	if r.mode == HashMode {
		return "/#" + p
	}
	return p
}

// Navigation is the outcome of resolving a URL against the table and guard.
type Navigation struct {
	Requested  string
	Route      Route
	Redirected bool
}

// Navigate resolves rawURL, runs the guard and follows a redirect once.
func (r *Router) Navigate(ctx context.Context, rawURL string, tokens TokenReader) (Navigation, error) {
	p, err := r.Location(rawURL)
	if err != nil {
		return Navigation{}, err
	}

	nav := Navigation{Requested: p}

	to, ok := r.Match(p)
	if !ok {
		return nav, fmt.Errorf("%w: %s", ErrNoRoute, p)
	}

	d := Guard(ctx, to, tokens)
	if d.Allowed() {
		nav.Route = to
		return nav, nil
	}

	target, ok := r.Match(d.Redirect)
	if !ok {
		return nav, fmt.Errorf("%w: redirect %s", ErrNoRoute, d.Redirect)
	}

	nav.Route = target
	nav.Redirected = true

	return nav, nil
}

func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
