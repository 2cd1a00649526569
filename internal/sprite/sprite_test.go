package sprite

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/mabego/springai-web/internal/assert"
)

const chatSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="24" height="24" viewBox="0 0 24 24" fill="none"><path d="M4 4h16v12H5.17L4 17.17V4z"/></svg>`

const robotSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect x="6" y="10" width="20" height="14" rx="3"/></svg>`

func testOptions(inject string) Options {
	return Options{
		SymbolID:    "icon-[dir]-[name]",
		Inject:      inject,
		CustomDomID: "__svg__icons__dom__",
	}
}

func TestSymbolID(t *testing.T) {
	tests := []struct {
		name   string
		format string
		rel    string
		want   string
	}{
		{name: "Root file", format: "icon-[dir]-[name]", rel: "chat.svg", want: "icon-chat"},
		{name: "Nested file", format: "icon-[dir]-[name]", rel: "brand/robot.svg", want: "icon-brand-robot"},
		{name: "Deep file", format: "icon-[dir]-[name]", rel: "a/b/c.svg", want: "icon-a-b-c"},
		{name: "Name only", format: "icon-[name]", rel: "brand/robot.svg", want: "icon-brand/robot"},
		{name: "Leading slash", format: "icon-[dir]-[name]", rel: "/send.svg", want: "icon-send"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, SymbolID(tt.format, tt.rel), tt.want)
		})
	}
}

func TestBuild(t *testing.T) {
	fsys := fstest.MapFS{
		"icons/chat.svg":        &fstest.MapFile{Data: []byte(chatSVG)},
		"icons/brand/robot.svg": &fstest.MapFile{Data: []byte(robotSVG)},
		"icons/readme.txt":      &fstest.MapFile{Data: []byte("not an icon")},
	}

	s, err := Build(fsys, []string{"icons"}, testOptions(InjectBodyLast))
	assert.NilError(t, err)

	assert.Equal(t, len(s.Symbols), 2)
	assert.Equal(t, s.Symbols[0].ID, "icon-brand-robot")
	assert.Equal(t, s.Symbols[1].ID, "icon-chat")

	chat := s.Symbols[1].Markup
	assert.StringContains(t, chat, `<symbol id="icon-chat"`)
	assert.StringContains(t, chat, `viewBox="0 0 24 24"`)
	assert.StringContains(t, chat, `fill="none"`)
	assert.StringContains(t, chat, `<path d="M4 4h16v12H5.17L4 17.17V4z"`)
	assert.StringNotContains(t, chat, `width="24"`)
	assert.StringNotContains(t, chat, `xmlns`)

	// Only the <svg> root loses its geometry; children keep theirs.
	assert.StringContains(t, s.Symbols[0].Markup, `width="20"`)

	markup := s.Markup()
	assert.StringContains(t, markup, `id="__svg__icons__dom__"`)
	assert.StringContains(t, markup, `style="position: absolute; width: 0; height: 0"`)
}

func TestBuildErrors(t *testing.T) {
	t.Run("Duplicate id", func(t *testing.T) {
		fsys := fstest.MapFS{
			"a/chat.svg": &fstest.MapFile{Data: []byte(chatSVG)},
			"b/chat.svg": &fstest.MapFile{Data: []byte(chatSVG)},
		}
		_, err := Build(fsys, []string{"a", "b"}, testOptions(InjectBodyLast))
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("No svg element", func(t *testing.T) {
		fsys := fstest.MapFS{
			"icons/bad.svg": &fstest.MapFile{Data: []byte("<p>hello</p>")},
		}
		_, err := Build(fsys, []string{"icons"}, testOptions(InjectBodyLast))
		assert.ErrorIs(t, err, ErrNoSVG)
	})

	t.Run("Missing dir", func(t *testing.T) {
		_, err := Build(fstest.MapFS{}, []string{"icons"}, testOptions(InjectBodyLast))
		if err == nil {
			t.Error("expected an error for a missing directory")
		}
	})
}

const page = `<!doctype html><html><head><title>Spring AI 机器人 - 登录</title></head><body><main id="app">hi</main></body></html>`

func buildTestSprite(t *testing.T, inject string) *Sprite {
	t.Helper()

	fsys := fstest.MapFS{"icons/chat.svg": &fstest.MapFile{Data: []byte(chatSVG)}}
	s, err := Build(fsys, []string{"icons"}, testOptions(inject))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestInject(t *testing.T) {
	t.Run("Body last", func(t *testing.T) {
		out, err := buildTestSprite(t, InjectBodyLast).Inject([]byte(page))
		assert.NilError(t, err)

		body := string(out)
		assert.StringContains(t, body, "Spring AI 机器人 - 登录")
		if strings.Index(body, `id="app"`) > strings.Index(body, `__svg__icons__dom__`) {
			t.Error("sprite should follow the page content")
		}
	})

	t.Run("Body first", func(t *testing.T) {
		out, err := buildTestSprite(t, InjectBodyFirst).Inject([]byte(page))
		assert.NilError(t, err)

		body := string(out)
		if strings.Index(body, `id="app"`) < strings.Index(body, `__svg__icons__dom__`) {
			t.Error("sprite should precede the page content")
		}
	})

	t.Run("Bare fragment", func(t *testing.T) {
		out, err := buildTestSprite(t, InjectBodyLast).Inject([]byte(`<div id="app"></div>`))
		assert.NilError(t, err)

		body := string(out)
		assert.StringContains(t, body, `<body><div id="app"></div><svg`)
		assert.StringContains(t, body, `id="__svg__icons__dom__"`)
	})

	t.Run("Idempotent", func(t *testing.T) {
		s := buildTestSprite(t, InjectBodyLast)

		once, err := s.Inject([]byte(page))
		assert.NilError(t, err)
		twice, err := s.Inject(once)
		assert.NilError(t, err)

		assert.Equal(t, strings.Count(string(twice), `id="__svg__icons__dom__"`), 1)
	})
}
