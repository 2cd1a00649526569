package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mabego/springai-web/internal/assert"
	"github.com/mabego/springai-web/internal/router"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSpriteList(t *testing.T) {
	out, err := run(t, "sprite", "--list")
	assert.NilError(t, err)

	assert.StringContains(t, out, "icon-brand-robot\ticons/brand/robot.svg")
	assert.StringContains(t, out, "icon-chat\ticons/chat.svg")
	assert.StringContains(t, out, "icon-logout\ticons/logout.svg")
}

func TestSpriteOut(t *testing.T) {
	dir := t.TempDir()
	icons := filepath.Join(dir, "icons")
	if err := os.MkdirAll(filepath.Join(icons, "nav"), 0o755); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filepath.Join(icons, "nav", "home.svg"),
		[]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 8 8"><path d="M0 0h8v8H0z"/></svg>`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(dir, "sprite.svg")
	_, err = run(t, "sprite", "--icons", icons, "-o", file)
	assert.NilError(t, err)

	b, err := os.ReadFile(file)
	assert.NilError(t, err)
	assert.StringContains(t, string(b), `<symbol id="icon-nav-home" viewBox="0 0 8 8">`)
	assert.StringContains(t, string(b), `id="__svg__icons__dom__"`)
}

func TestRoutes(t *testing.T) {
	out, err := run(t, "routes")
	assert.NilError(t, err)

	assert.StringContains(t, out, "/#/chat")
	assert.StringContains(t, out, "html/views/chat.page.tmpl")
	assert.StringContains(t, out, router.ChatTitle)

	out, err = run(t, "routes", "--history")
	assert.NilError(t, err)
	assert.StringNotContains(t, out, "/#/chat")
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "No token",
			args: []string{"navigate", "/#/chat"},
			want: "/chat -> / (redirected) " + router.LoginTitle,
		},
		{
			name: "Token",
			args: []string{"navigate", "/#/chat", "--token", "abc123"},
			want: "/chat -> /chat (allowed) " + router.ChatTitle,
		},
		{
			name: "Empty token",
			args: []string{"navigate", "/#/chat", "--token="},
			want: "/chat -> /chat (allowed) " + router.ChatTitle,
		},
		{
			name: "Login",
			args: []string{"navigate", "/"},
			want: "/ -> / (allowed) " + router.LoginTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			assert.NilError(t, err)
			assert.Equal(t, strings.TrimSpace(out), tt.want)
		})
	}
}

func TestNavigateUnknown(t *testing.T) {
	_, err := run(t, "navigate", "/#/settings")
	assert.ErrorIs(t, err, router.ErrNoRoute)
}

func TestComponents(t *testing.T) {
	out, err := run(t, "components")
	assert.NilError(t, err)

	assert.StringContains(t, out, "login (html/views/login.page.tmpl)")
	assert.StringContains(t, out, "a-form-item -> FormItem from html/components/form-item.tmpl")
	assert.StringContains(t, out, "a-input -> Input from html/components/input.tmpl")
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	assert.NilError(t, err)
	assert.Equal(t, strings.TrimSpace(out), "ok: 2 views, 3 icons, 2 migrations")
}

func TestCheckBadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "build.yaml")
	if err := os.WriteFile(file, []byte("svgIcons:\n  inject: head\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "check", "--config", file)
	if err == nil {
		t.Error("expected an invalid config error")
	}
}
