package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/justinas/nosurf"
	"github.com/mabego/springai-web/internal/router"
)

// serverError helper writes an error message and a stack trace to the errorLog,
// then sends a generic 500 Internal Server Error response to the user.
func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)

	if app.debug {
		http.Error(w, trace, http.StatusInternalServerError)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// clientError helper sends a specific status code and its description to the user.
func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter) {
	app.clientError(w, http.StatusNotFound)
}

// render executes the route's view, loading it on first use, and injects the
// icon sprite into the page before writing it.
func (app *application) render(w http.ResponseWriter, status int, rt router.Route, data *templateData) {
	v, err := app.views.Get(rt.View)
	if err != nil {
		app.serverError(w, err)
		return
	}

	data.Title = rt.Title
	data.Route = rt.Name
	data.Stylesheets = v.stylesheets

	buf := new(bytes.Buffer)

	err = v.ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.serverError(w, err)
		return
	}

	sp, err := app.sprites.Get()
	if err != nil {
		app.serverError(w, err)
		return
	}

	page, err := sp.Inject(buf.Bytes())
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := w.Write(page); err != nil {
		app.errorLog.Output(2, err.Error())
	}
}

func (app *application) newTemplateData(r *http.Request) *templateData {
	return &templateData{
		HasToken:    app.hasToken(r),
		Nickname:    app.sessionManager.GetString(r.Context(), "nickname"),
		CurrentYear: time.Now().Year(),
		Flash:       app.sessionManager.PopString(r.Context(), "flash"),
		CSRFToken:   nosurf.Token(r),
		LoginHref:   app.router.Href(router.LoginPath),
		ChatHref:    app.router.Href(router.ChatPath),
	}
}

func (app *application) decodePostForm(r *http.Request, dst any) error {
	err := r.ParseForm()
	if err != nil {
		return err
	}

	err = app.formDecoder.Decode(dst, r.PostForm)
	if err != nil {
		// Check for a non-nil pointer through the error InvalidDecoderError
		var invalidDecoderError *form.InvalidDecoderError

		if errors.As(err, &invalidDecoderError) {
			panic(err)
		}

		return fmt.Errorf("form decoding error: %w", err)
	}

	return nil
}

func (app *application) hasToken(r *http.Request) bool {
	hasToken, ok := r.Context().Value(hasTokenContextKey).(bool)
	if !ok {
		return false
	}

	return hasToken
}
