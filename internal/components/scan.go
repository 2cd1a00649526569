package components

import (
	"errors"
	"io/fs"
	"path"
	"regexp"
	"sort"
)

var templateRefRX = regexp.MustCompile(`\{\{-?\s*template\s+"([^"]+)"`)

// Refs lists the template names a template source invokes, without duplicates,
// in order of first use.
func Refs(src []byte) []string {
	var refs []string
	seen := make(map[string]bool)

	for _, m := range templateRefRX.FindAllSubmatch(src, -1) {
		name := string(m[1])
		if !seen[name] {
			seen[name] = true
			refs = append(refs, name)
		}
	}

	return refs
}

// Imports resolves the components a page uses, following references made by
// the component partials themselves. Each file is looked up in dirs in order;
// a resolved name with no partial on disk is skipped.
func Imports(fsys fs.FS, dirs []string, r Resolver, page []byte) ([]Component, error) {
	var out []Component
	done := make(map[string]bool)
	queue := Refs(page)

	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		if done[ref] {
			continue
		}
		done[ref] = true

		c, ok := r.Resolve(ref)
		if !ok {
			continue
		}

		file, src, err := find(fsys, dirs, c.File)
		if err != nil {
			return nil, err
		}
		if file == "" {
			continue
		}

		c.File = file
		out = append(out, c)
		queue = append(queue, Refs(src)...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].File < out[j].File })

	return out, nil
}

// Files returns the partial paths of cs.
func Files(cs []Component) []string {
	files := make([]string, 0, len(cs))
	for _, c := range cs {
		files = append(files, c.File)
	}
	return files
}

// SideEffects returns the distinct stylesheets cs require.
func SideEffects(cs []Component) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range cs {
		for _, s := range c.SideEffects {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

func find(fsys fs.FS, dirs []string, name string) (string, []byte, error) {
	for _, dir := range dirs {
		p := path.Join(dir, name)

		src, err := fs.ReadFile(fsys, p)
		if err == nil {
			return p, src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, nil
}
