// Package api exposes the JSON surface used by non-browser clients.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/internal/util"
	"github.com/KiloProjects/blognova/sudoapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/schema"
)

// API is the base
type API struct {
	base *sudoapi.BaseAPI
}

// New declares a new API instance
func New(base *sudoapi.BaseAPI) *API {
	return &API{base}
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Handler is the magic behind the API
func (s *API) Handler() http.Handler {
	r := chi.NewRouter()

	corsConfig := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(corsConfig.Handler)

	r.Use(s.setupSession)

	r.Route("/auth", func(r chi.Router) {
		r.With(s.mustBeVisitor).Post("/signup", s.signup)
		r.With(s.mustBeVisitor).Post("/login", s.login)
		r.With(s.mustBeAuthed).Post("/logout", s.logout)
	})

	r.Route("/posts", func(r chi.Router) {
		r.With(s.mustBeAuthed).Post("/", s.createPost)
		r.With(s.validatePostID).Route("/{postID}", func(r chi.Router) {
			r.Get("/", s.getPost)
			r.With(s.mustBeAuthed).Post("/update", s.updatePost)
			r.With(s.mustBeAuthed).Post("/delete", s.deletePost)

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", s.getComments)
				r.With(s.mustBeAuthed).Post("/", s.createComment)
				r.With(s.mustBeAuthed, s.validateCommentID).Post("/{commentID}/update", s.updateComment)
				r.With(s.mustBeAuthed, s.validateCommentID).Post("/{commentID}/delete", s.deleteComment)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorData(w, "Endpoint not found", 404)
	})

	return r
}

// getAuthToken reads the session ID from the Authorization header, falling
// back to the browser cookie.
func (s *API) getAuthToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return s.base.GetSessCookie(r)
}

func (s *API) setupSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.base.SessionUser(r.Context(), s.getAuthToken(r))
		if err != nil || user == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.AuthedUserKey, user)))
	})
}

func (s *API) mustBeAuthed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !util.User(r).IsAuthed() {
			errorData(w, "You must be authenticated", 401)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *API) mustBeVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.User(r).IsAuthed() {
			errorData(w, "You must not be logged in", 401)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *API) validatePostID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
		if err != nil {
			errorData(w, "Invalid post ID", 400)
			return
		}
		post, err1 := s.base.VisiblePost(r.Context(), postID, util.User(r))
		if err1 != nil {
			if errors.Is(err1, context.Canceled) {
				errorData(w, "Request canceled", 499)
				return
			}
			errorData(w, "Post not found", 404)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.PostKey, post)))
	})
}

func (s *API) validateCommentID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		commentID, err := strconv.Atoi(chi.URLParam(r, "commentID"))
		if err != nil {
			errorData(w, "Invalid comment ID", 400)
			return
		}
		comment, err1 := s.base.PostComment(r.Context(), util.Post(r).ID, commentID)
		if err1 != nil {
			errorData(w, "Comment not found", 404)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.CommentKey, comment)))
	})
}

func statusError(w http.ResponseWriter, err error) {
	errorData(w, err, blognova.ErrorCode(err))
}
