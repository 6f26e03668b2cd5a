package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/KiloProjects/blognova"
)

const sessionCookieName = "bn-sessionid"

func setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:  sessionCookieName,
		Value: sid,
		Path:  "/",

		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,

		Expires: time.Now().Add(30 * 24 * time.Hour),
	})
}

func removeSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:  sessionCookieName,
		Value: "",
		Path:  "/",

		Expires: time.Unix(0, 0),
	})
}

// backURL only allows local redirect targets, so login can't be used as an
// open redirector.
func backURL(r *http.Request) string {
	back := r.FormValue("back")
	if back == "" || !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		return "/"
	}
	return back
}

func (rt *Web) login() http.HandlerFunc {
	templ := rt.parse(nil, "auth/login.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, &AuthParams{
			Ctx:  GenContext(r),
			Back: r.URL.Query().Get("back"),
		})
	}
}

func (rt *Web) loginSubmit() http.HandlerFunc {
	templ := rt.parse(nil, "auth/login.html")
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := rt.base.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			rt.runTempl(w, r, templ, &AuthParams{
				Ctx:   GenContext(r),
				Back:  r.FormValue("back"),
				Error: err.Error(),
			})
			return
		}
		sid, err := rt.base.CreateSession(r.Context(), uid)
		if err != nil {
			rt.statusPage(w, r, blognova.ErrorCode(err), "Couldn't create session")
			return
		}
		setSessionCookie(w, sid)
		http.Redirect(w, r, backURL(r), http.StatusFound)
	}
}

func (rt *Web) signup() http.HandlerFunc {
	templ := rt.parse(nil, "auth/signup.html")
	return func(w http.ResponseWriter, r *http.Request) {
		rt.runTempl(w, r, templ, &AuthParams{Ctx: GenContext(r)})
	}
}

func (rt *Web) signupSubmit() http.HandlerFunc {
	templ := rt.parse(nil, "auth/signup.html")
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := rt.base.Signup(r.Context(), r.FormValue("email"), r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			rt.runTempl(w, r, templ, &AuthParams{
				Ctx:   GenContext(r),
				Error: err.Error(),
			})
			return
		}
		sid, err := rt.base.CreateSession(r.Context(), uid)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		setSessionCookie(w, sid)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (rt *Web) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sid := rt.base.GetSessCookie(r); sid != "" {
			rt.base.RemoveSession(r.Context(), sid)
		}
		removeSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
