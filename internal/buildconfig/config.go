// Package buildconfig loads the declarative asset wiring for the web front:
// the CSS framework entry, the component resolvers and the SVG sprite plugin.
package buildconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	InjectBodyLast  = "body-last"
	InjectBodyFirst = "body-first"

	DefaultSymbolID    = "icon-[dir]-[name]"
	DefaultCustomDomID = "__svg__icons__dom__"
)

var ErrInvalidConfig = errors.New("invalid build config")

type Config struct {
	CSS        CSS        `yaml:"css"`
	Components Components `yaml:"components"`
	SVGIcons   SVGIcons   `yaml:"svgIcons"`
	Resolve    Resolve    `yaml:"resolve"`
}

// CSS names the utility framework and the stylesheet every page links.
type CSS struct {
	Framework string `yaml:"framework"`
	Entry     string `yaml:"entry"`
}

type Components struct {
	Dirs      []string   `yaml:"dirs"`
	Resolvers []Resolver `yaml:"resolvers"`
}

// Resolver selects a component resolver by name. ImportStyle is "false",
// "true", "css" or "less", mirroring the UI library's style entry points.
type Resolver struct {
	Name        string      `yaml:"name"`
	Prefix      string      `yaml:"prefix"`
	ImportStyle ImportStyle `yaml:"importStyle"`
}

type SVGIcons struct {
	IconDirs    []string `yaml:"iconDirs"`
	SymbolID    string   `yaml:"symbolId"`
	Inject      string   `yaml:"inject"`
	CustomDomID string   `yaml:"customDomId"`
}

type Resolve struct {
	Alias map[string]string `yaml:"alias"`
}

// ImportStyle accepts both a YAML boolean and a string.
type ImportStyle string

func (s *ImportStyle) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "", "false":
		*s = ""
	case "true", "css":
		*s = "css"
	case "less":
		*s = "less"
	default:
		return fmt.Errorf("%w: importStyle %q", ErrInvalidConfig, node.Value)
	}
	return nil
}

// Default returns the wiring used when ui/build.yaml omits a section.
func Default() *Config {
	return &Config{
		CSS: CSS{
			Framework: "tailwindcss",
			Entry:     "static/css/main.css",
		},
		Components: Components{
			Dirs:      []string{"html/components"},
			Resolvers: []Resolver{{Name: "antd", Prefix: "A"}},
		},
		SVGIcons: SVGIcons{
			IconDirs:    []string{"icons"},
			SymbolID:    DefaultSymbolID,
			Inject:      InjectBodyLast,
			CustomDomID: DefaultCustomDomID,
		},
		Resolve: Resolve{
			Alias: map[string]string{"@": "html"},
		},
	}
}

// Parse decodes r over the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses name from fsys.
func Load(fsys fs.FS, name string) (*Config, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open build config: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// fillDefaults restores values that an explicit but empty YAML key cleared.
func (c *Config) fillDefaults() {
	def := Default()

	if c.CSS.Entry == "" {
		c.CSS.Entry = def.CSS.Entry
	}
	if len(c.Components.Dirs) == 0 {
		c.Components.Dirs = def.Components.Dirs
	}
	for i := range c.Components.Resolvers {
		if c.Components.Resolvers[i].Prefix == "" {
			c.Components.Resolvers[i].Prefix = "A"
		}
	}
	if len(c.SVGIcons.IconDirs) == 0 {
		c.SVGIcons.IconDirs = def.SVGIcons.IconDirs
	}
	if c.SVGIcons.SymbolID == "" {
		c.SVGIcons.SymbolID = def.SVGIcons.SymbolID
	}
	if c.SVGIcons.Inject == "" {
		c.SVGIcons.Inject = def.SVGIcons.Inject
	}
	if c.SVGIcons.CustomDomID == "" {
		c.SVGIcons.CustomDomID = def.SVGIcons.CustomDomID
	}
	if c.Resolve.Alias == nil {
		c.Resolve.Alias = map[string]string{}
	}
}

func (c *Config) Validate() error {
	switch c.SVGIcons.Inject {
	case InjectBodyLast, InjectBodyFirst:
	default:
		return fmt.Errorf("%w: svgIcons.inject %q", ErrInvalidConfig, c.SVGIcons.Inject)
	}

	if !strings.Contains(c.SVGIcons.SymbolID, "[name]") {
		return fmt.Errorf("%w: svgIcons.symbolId %q has no [name]", ErrInvalidConfig, c.SVGIcons.SymbolID)
	}

	for _, r := range c.Components.Resolvers {
		if r.Name != "antd" {
			return fmt.Errorf("%w: unknown resolver %q", ErrInvalidConfig, r.Name)
		}
	}

	return nil
}

// ResolveAlias rewrites an aliased path such as "@/views/login.page.tmpl".
// The longest matching alias wins; unaliased paths are cleaned and returned.
func (c *Config) ResolveAlias(p string) string {
	keys := make([]string, 0, len(c.Resolve.Alias))
	for k := range c.Resolve.Alias {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, k := range keys {
		if p == k {
			return path.Clean(c.Resolve.Alias[k])
		}
		if strings.HasPrefix(p, k+"/") {
			return path.Join(c.Resolve.Alias[k], strings.TrimPrefix(p, k+"/"))
		}
	}

	return path.Clean(p)
}
