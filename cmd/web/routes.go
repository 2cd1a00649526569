package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/mabego/springai-web/ui"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFound(w)
	})

	// Use an embedded file system instead of reading files from the disk at runtime.
	fileServer := http.FileServer(http.FS(ui.Files))
	router.Handler(http.MethodGet, "/static/*filepath", fileServer)

	router.HandlerFunc(http.MethodGet, "/ping", ping)
	router.HandlerFunc(http.MethodGet, "/sprite.svg", app.spriteSheet)

	// Session, CSRF and token presence for every page and form.
	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.loadToken)

	// Each view gets its own guard bound to the route it serves.
	for _, rt := range app.router.Routes() {
		guarded := dynamic.Append(app.guard(rt))
		router.Handler(http.MethodGet, rt.Path, guarded.Then(app.view(rt)))
	}

	router.Handler(http.MethodPost, "/login", dynamic.ThenFunc(app.loginPost))
	router.Handler(http.MethodPost, "/logout", dynamic.ThenFunc(app.logoutPost))

	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders)

	return standard.Then(router)
}
