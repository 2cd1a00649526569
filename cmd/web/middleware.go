package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/justinas/nosurf"
	"github.com/mabego/springai-web/internal/router"
	"github.com/mabego/springai-web/internal/storage"
)

var ErrRecovered = errors.New("recovered")

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The icon sprite is hidden with an inline style attribute.
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%w: %s", ErrRecovered, err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		Path:     "/",
		Secure:   true, // false to deploy without an SSL/TLS certificate
		HttpOnly: true,
	})

	return csrfHandler
}

// loadToken records in the request context whether the client's store holds
// a token. The value itself is never inspected.
func (app *application) loadToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.tokens.Exists(r.Context(), router.TokenKey) {
			ctx := context.WithValue(r.Context(), hasTokenContextKey, true)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// guard runs the navigation guard for rt before its view is rendered.
func (app *application) guard(rt router.Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := router.Guard(r.Context(), rt, app.tokens)
			if !d.Allowed() {
				app.infoLog.Printf("guard: %s without token, redirecting to %s", rt.Path, d.Redirect)
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}

			if rt.RequiresToken {
				if token, ok := app.tokens.Get(r.Context(), router.TokenKey); ok {
					app.infoLog.Printf("guard: %s allowed for token %s", rt.Path, storage.Fingerprint(token))
				}

				// Pages behind the guard must not be served from a cache after logout.
				w.Header().Add("Cache-Control", "no-store")
			}

			next.ServeHTTP(w, r)
		})
	}
}
