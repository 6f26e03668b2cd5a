package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/internal/util"
	"github.com/go-chi/chi/v5"
)

func trimNonDigits(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
}

func (rt *Web) initSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := rt.base.SessionUser(r.Context(), rt.base.GetSessCookie(r))
		if err != nil || user == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.AuthedUserKey, user)))
	})
}

// ValidatePostID puts the post in the context. Posts that are hidden from
// the viewer come out as not-found, identical to posts that don't exist.
func (rt *Web) ValidatePostID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.Atoi(trimNonDigits(chi.URLParam(r, "postID")))
		if err != nil {
			rt.statusPage(w, r, 404, "Post not found")
			return
		}
		post, err1 := rt.base.VisiblePost(r.Context(), postID, util.User(r))
		if err1 != nil {
			if blognova.ErrorCode(err1) != 404 && !errors.Is(err1, context.Canceled) {
				slog.WarnContext(r.Context(), "Couldn't get post", slog.Any("err", err1), slog.Int("post_id", postID))
			}
			rt.statusPage(w, r, 404, "Post not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.PostKey, post)))
	})
}

// ValidateCommentID puts the comment in the context. The comment must
// belong to the post already resolved in the context.
func (rt *Web) ValidateCommentID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		commentID, err := strconv.Atoi(trimNonDigits(chi.URLParam(r, "commentID")))
		if err != nil {
			rt.statusPage(w, r, 404, "Comment not found")
			return
		}
		comment, err1 := rt.base.PostComment(r.Context(), util.Post(r).ID, commentID)
		if err1 != nil {
			rt.statusPage(w, r, 404, "Comment not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.CommentKey, comment)))
	})
}

// ValidateCategorySlug puts the category in the context. Unpublished
// categories are indistinguishable from missing ones.
func (rt *Web) ValidateCategorySlug(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		categorySlug := strings.TrimRightFunc(chi.URLParam(r, "slug"), func(r rune) bool {
			return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
		})
		category, err := rt.base.PublishedCategoryBySlug(r.Context(), categorySlug)
		if err != nil {
			rt.statusPage(w, r, 404, "Category not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.CategoryKey, category)))
	})
}

// ValidateUsername puts the profile user in the context
func (rt *Web) ValidateUsername(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := rt.base.UserByName(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			rt.statusPage(w, r, 404, "User not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.ContentUserKey, user)))
	})
}

func (rt *Web) mustBeAuthed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !util.User(r).IsAuthed() {
			http.Redirect(w, r, "/login?back="+url.PathEscape(r.URL.Path), http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rt *Web) mustBeVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.User(r).IsAuthed() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// mustBePostAuthor sends non-authors back to the post page instead of an
// error, matching what the links they could legitimately click lead to.
func (rt *Web) mustBePostAuthor(next http.Handler) http.Handler {
	return rt.mustBeAuthed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rt.base.IsPostEditor(util.User(r), util.Post(r)) {
			http.Redirect(w, r, fmt.Sprintf("/posts/%d", util.Post(r).ID), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (rt *Web) mustBeCommentAuthor(next http.Handler) http.Handler {
	return rt.mustBeAuthed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rt.base.IsCommentEditor(util.User(r), util.Comment(r)) {
			http.Redirect(w, r, fmt.Sprintf("/posts/%d", util.Post(r).ID), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}))
}
