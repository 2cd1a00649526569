package main

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mabego/springai-web/internal/router"
	"github.com/mabego/springai-web/internal/storage"
	"github.com/mabego/springai-web/internal/validator"
)

const NicknameMaxChars = 32

// The struct tags tell the go-playground/form decoder how to map HTML form values into the struct fields.
type loginForm struct {
	Nickname            string `form:"nickname"`
	validator.Validator `form:"-"`
}

// view renders the page bound to rt. Guarding happens in middleware.
func (app *application) view(rt router.Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := app.newTemplateData(r)
		if rt.Path == router.LoginPath {
			data.Form = loginForm{Nickname: data.Nickname}
		}

		app.render(w, http.StatusOK, rt, data)
	})
}

// loginPost writes a fresh opaque token into the client's store. No
// credential is checked; holding the token is what the guard looks for.
func (app *application) loginPost(w http.ResponseWriter, r *http.Request) {
	var form loginForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	form.CheckField(validator.NotBlank(form.Nickname), "nickname", "This field cannot be blank")
	form.CheckField(validator.MaxChars(form.Nickname, NicknameMaxChars), "nickname",
		fmt.Sprintf("This field cannot be more than %d characters long", NicknameMaxChars))
	form.CheckField(validator.Printable(form.Nickname), "nickname", "This field cannot contain control characters")

	if !form.Valid() {
		rt, _ := app.router.Match(router.LoginPath)
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, rt, data)
		return
	}

	// RenewToken changes the session ID when the login state changes.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	token := uuid.NewString()
	app.tokens.Set(r.Context(), router.TokenKey, token)
	app.sessionManager.Put(r.Context(), "nickname", validator.Trim(form.Nickname))
	app.sessionManager.Put(r.Context(), "flash", "登录成功")

	app.infoLog.Printf("login: token %s issued", storage.Fingerprint(token))

	http.Redirect(w, r, router.ChatPath, http.StatusSeeOther)
}

func (app *application) logoutPost(w http.ResponseWriter, r *http.Request) {
	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.tokens.Remove(r.Context(), router.TokenKey)
	app.sessionManager.Remove(r.Context(), "nickname")
	app.sessionManager.Put(r.Context(), "flash", "已退出登录")

	http.Redirect(w, r, router.LoginPath, http.StatusSeeOther)
}

// spriteSheet serves the icon sprite as a standalone SVG document.
func (app *application) spriteSheet(w http.ResponseWriter, r *http.Request) {
	sp, err := app.sprites.Get()
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, sp.Markup())
}

func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodGet {
		fmt.Fprintln(w, "OK")
	}
}
