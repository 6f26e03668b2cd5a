package util

import (
	"net/http"

	"github.com/KiloProjects/blognova"
)

// BNContextType is the string type for all context values
type BNContextType string

const (
	// AuthedUserKey is the key to be used for adding the authed user to context
	AuthedUserKey = BNContextType("authed_user")
	// PostKey is the key to be used for adding posts to context
	PostKey = BNContextType("post")
	// CommentKey is the key to be used for adding comments to context
	CommentKey = BNContextType("comment")
	// CategoryKey is the key to be used for adding categories to context
	CategoryKey = BNContextType("category")
	// ContentUserKey is the key to be used for adding the viewed profile's user to context
	ContentUserKey = BNContextType("content_user")
)

// User returns the authed user from request context, nil for anonymous
// visitors.
func User(r *http.Request) *blognova.User {
	switch v := r.Context().Value(AuthedUserKey).(type) {
	case blognova.User:
		return &v
	case *blognova.User:
		return v
	default:
		return nil
	}
}

// Post returns the post from request context
func Post(r *http.Request) *blognova.Post {
	switch v := r.Context().Value(PostKey).(type) {
	case blognova.Post:
		return &v
	case *blognova.Post:
		return v
	default:
		return nil
	}
}

// Comment returns the comment from request context
func Comment(r *http.Request) *blognova.Comment {
	switch v := r.Context().Value(CommentKey).(type) {
	case blognova.Comment:
		return &v
	case *blognova.Comment:
		return v
	default:
		return nil
	}
}

// Category returns the category from request context
func Category(r *http.Request) *blognova.Category {
	switch v := r.Context().Value(CategoryKey).(type) {
	case blognova.Category:
		return &v
	case *blognova.Category:
		return v
	default:
		return nil
	}
}

// ContentUser returns the user whose profile is being viewed
func ContentUser(r *http.Request) *blognova.User {
	switch v := r.Context().Value(ContentUserKey).(type) {
	case blognova.User:
		return &v
	case *blognova.User:
		return v
	default:
		return nil
	}
}
