// Package web is the server-rendered frontend. If the `sudoapi` package
// interacts with the DB, the `web` package interacts with the user.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/internal/config"
	"github.com/KiloProjects/blognova/sudoapi"
	"github.com/benbjohnson/hashfs"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
)

//go:embed static
var embedded embed.FS

//go:embed templ
var templateDir embed.FS

var fsys = hashfs.NewFS(embedded)

// Web is the struct representing this whole package
type Web struct {
	base *sudoapi.BaseAPI

	hostURL *url.URL

	funcs template.FuncMap

	statusTempl *template.Template
}

// NewWeb returns a new web instance
func NewWeb(base *sudoapi.BaseAPI) *Web {
	hostURL, err := url.Parse(config.Server.HostURL)
	if err != nil {
		slog.WarnContext(context.Background(), "Invalid host URL in config", slog.Any("err", err))
		hostURL, _ = url.Parse("http://localhost:8080")
	}
	rt := &Web{base: base, hostURL: hostURL}
	rt.funcs = template.FuncMap{
		"version": func() string { return blognova.Version },
		"hashedName": func(name string) string {
			return "/" + fsys.HashName("static/"+name)
		},
		"timeAgo": func(t time.Time) string {
			return humanize.Time(t)
		},
		"dateFormat": func(t time.Time) string {
			return t.Format("January 2, 2006 15:04")
		},
		"formValue": func(t time.Time) string {
			return t.Format("2006-01-02T15:04")
		},
		"inc":   func(x int) int { return x + 1 },
		"dec":   func(x int) int { return x - 1 },
		"deref": func(x *int) int { return *x },
		"canonicalURL": func(p string) string {
			return rt.hostURL.JoinPath(p).String()
		},
	}
	rt.statusTempl = rt.parse(nil, "status.html")
	return rt
}

// Handler returns a chi.Router with all the page routes
func (rt *Web) Handler() http.Handler {
	r := chi.NewRouter()

	r.Mount("/static", hashfs.FileServer(fsys))

	r.Group(func(r chi.Router) {
		r.Use(rt.initSession)

		r.Get("/", rt.index())

		r.Route("/posts", func(r chi.Router) {
			r.With(rt.mustBeAuthed).Route("/create", func(r chi.Router) {
				r.Get("/", rt.createPost())
				r.Post("/", rt.createPostSubmit())
			})
			r.With(rt.ValidatePostID).Route("/{postID}", func(r chi.Router) {
				r.Get("/", rt.postDetail())
				r.With(rt.mustBePostAuthor).Route("/edit", func(r chi.Router) {
					r.Get("/", rt.editPost())
					r.Post("/", rt.editPostSubmit())
				})
				r.With(rt.mustBePostAuthor).Route("/delete", func(r chi.Router) {
					r.Get("/", rt.deletePost())
					r.Post("/", rt.deletePostSubmit())
				})
				r.Route("/comments", func(r chi.Router) {
					r.With(rt.mustBeAuthed).Post("/", rt.addComment())
					r.With(rt.ValidateCommentID, rt.mustBeCommentAuthor).Route("/{commentID}", func(r chi.Router) {
						r.Get("/edit", rt.editComment())
						r.Post("/edit", rt.editCommentSubmit())
						r.Get("/delete", rt.deleteComment())
						r.Post("/delete", rt.deleteCommentSubmit())
					})
				})
			})
		})

		r.With(rt.ValidateCategorySlug).Get("/category/{slug}", rt.categoryFeed())

		r.With(rt.ValidateUsername).Get("/profile/{username}", rt.profile())
		r.With(rt.mustBeAuthed).Route("/edit", func(r chi.Router) {
			r.Get("/", rt.editProfile())
			r.Post("/", rt.editProfileSubmit())
		})

		r.With(rt.mustBeVisitor).Route("/login", func(r chi.Router) {
			r.Get("/", rt.login())
			r.Post("/", rt.loginSubmit())
		})
		r.With(rt.mustBeVisitor).Route("/signup", func(r chi.Router) {
			r.Get("/", rt.signup())
			r.Post("/", rt.signupSubmit())
		})
		r.With(rt.mustBeAuthed).Post("/logout", rt.logout())

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			rt.statusPage(w, r, 404, "Page not found")
		})
	})

	return r
}

func (rt *Web) runTempl(w http.ResponseWriter, r *http.Request, templ *template.Template, data any) {
	if err := templ.Execute(w, data); err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(r.Context(), "Error executing template", slog.Any("err", err), slog.String("templ", templ.Name()))
	}
}

func (rt *Web) statusPage(w http.ResponseWriter, r *http.Request, statusCode int, errMessage string) {
	w.WriteHeader(statusCode)
	rt.runTempl(w, r, rt.statusTempl, &StatusParams{
		Ctx:     GenContext(r),
		Code:    statusCode,
		Message: errMessage,
	})
}
