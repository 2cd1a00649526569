package main

import (
	"bytes"
	"html"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"testing"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-playground/form/v4"
	"github.com/mabego/springai-web/internal/buildconfig"
	"github.com/mabego/springai-web/internal/router"
	"github.com/mabego/springai-web/internal/storage"
	"github.com/mabego/springai-web/ui"
)

// csrfTokenRX captures the CSRF token value from a rendered form.
var csrfTokenRX = regexp.MustCompile(`<input type="hidden" name="csrf_token" value="([^"]+)"`)

func extractCSRFToken(t *testing.T, body string) string {
	t.Helper()

	matches := csrfTokenRX.FindStringSubmatch(body)
	if len(matches) < 2 {
		t.Fatal("no csrf token found in body")
	}

	return html.UnescapeString(matches[1])
}

// newTestApplication creates an application wired to the embedded UI and an in-memory session store.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg, err := buildconfig.Load(ui.Files, "build.yaml")
	if err != nil {
		t.Fatal(err)
	}

	rt, err := router.New(router.HashMode, router.DefaultRoutes())
	if err != nil {
		t.Fatal(err)
	}

	sessionManager := newSessionManager(memstore.New())
	sessionManager.Cookie.Secure = true

	return &application{
		errorLog:       log.New(io.Discard, "", 0),
		infoLog:        log.New(io.Discard, "", 0),
		router:         rt,
		views:          newViewCache(ui.Files, cfg),
		sprites:        newSpriteSource(ui.Files, cfg.SVGIcons.IconDirs, cfg, 0),
		formDecoder:    form.NewDecoder(),
		sessionManager: sessionManager,
		tokens:         storage.NewSessionStore(sessionManager),
	}
}

// withSeed mounts /seed in front of the application routes. A request to
// /seed?token=abc123 stores "abc123" under the token key; /seed?token= stores
// the empty string.
func withSeed(app *application) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/seed", app.sessionManager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.tokens.Set(r.Context(), router.TokenKey, r.URL.Query().Get("token"))
		w.WriteHeader(http.StatusNoContent)
	})))
	mux.Handle("/", app.routes())

	return mux
}

// A custom testServer type that embeds an httptest.Server instance.
type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewTLSServer(h)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Response cookies are stored and sent with later test server client requests.
	ts.Client().Jar = jar

	// Return redirects to the test instead of following them.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

// get makes a GET request to a given url path using the test server client and returns the response
// status code, headers, and body.
func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().Get(ts.URL + urlPath)
	if err != nil {
		t.Fatal(err)
	}

	defer rs.Body.Close()
	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, string(bytes.TrimSpace(body))
}

// postForm sends POST requests to the test server.
func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().PostForm(ts.URL+urlPath, form)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, string(bytes.TrimSpace(body))
}

// login posts a nickname through the login form and returns the response status.
func (ts *testServer) login(t *testing.T, nickname string) (int, http.Header, string) {
	t.Helper()

	_, _, body := ts.get(t, "/")

	form := url.Values{}
	form.Add("nickname", nickname)
	form.Add("csrf_token", extractCSRFToken(t, body))

	return ts.postForm(t, "/login", form)
}
