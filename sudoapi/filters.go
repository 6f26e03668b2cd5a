package sudoapi

import (
	"time"

	"github.com/KiloProjects/blognova"
)

// NOTE: This must be in sync with the viewer constraint in db.postParams

// IsPostVisible decides whether the viewer may see the post at all. The
// author always sees their own post, drafts and scheduled posts included;
// everyone else only sees publicly visible posts. Callers surface a denial
// as not-found, so non-authors can't probe for hidden posts.
func (s *BaseAPI) IsPostVisible(user *blognova.User, post *blognova.Post, category *blognova.Category, now time.Time) bool {
	if post == nil {
		return false
	}
	if user.IsAuthed() && user.ID == post.AuthorID {
		return true
	}
	return post.VisibleAt(category, now)
}

// IsPostEditor gates edit and delete: authorship only.
func (s *BaseAPI) IsPostEditor(user *blognova.User, post *blognova.Post) bool {
	if !user.IsAuthed() {
		return false
	}
	if post == nil {
		return false
	}
	return post.AuthorID == user.ID
}

// IsCommentEditor gates comment edit and delete: authorship only.
func (s *BaseAPI) IsCommentEditor(user *blognova.User, comment *blognova.Comment) bool {
	if !user.IsAuthed() {
		return false
	}
	if comment == nil {
		return false
	}
	return comment.AuthorID == user.ID
}

// IsProfileOwner reports whether the viewer is looking at their own profile.
// Only the owner may edit it, and only the owner sees unpublished posts in
// the profile feed.
func (s *BaseAPI) IsProfileOwner(user *blognova.User, profile *blognova.User) bool {
	if !user.IsAuthed() || profile == nil {
		return false
	}
	return user.ID == profile.ID
}
