package sudoapi

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/KiloProjects/blognova"
)

func (s *BaseAPI) Comment(ctx context.Context, id int) (*blognova.Comment, error) {
	comment, err := s.db.Comment(ctx, blognova.CommentFilter{ID: &id})
	if err != nil {
		return nil, WrapError(err, "Couldn't find comment")
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

// PostComment resolves a comment that must belong to the given post;
// mismatches read as not-found, so comment IDs can't be addressed under the
// wrong post.
func (s *BaseAPI) PostComment(ctx context.Context, postID int, commentID int) (*blognova.Comment, error) {
	comment, err := s.Comment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, ErrNotFound
	}
	return comment, nil
}

func (s *BaseAPI) PostComments(ctx context.Context, postID int) ([]*blognova.Comment, error) {
	comments, err := s.db.Comments(ctx, blognova.CommentFilter{PostID: &postID})
	if err != nil {
		return nil, fmt.Errorf("couldn't find comments: %w", err)
	}
	if comments == nil {
		comments = []*blognova.Comment{}
	}
	return comments, nil
}

// CreateComment attaches a new comment to the post as the given author.
// Author and post are pinned here once and can never be reassigned.
func (s *BaseAPI) CreateComment(ctx context.Context, author *blognova.User, post *blognova.Post, text string) (int, error) {
	if !author.IsAuthed() {
		return -1, Statusf(401, "You must be logged in to comment")
	}
	if post == nil {
		return -1, ErrNotFound
	}
	if strings.TrimSpace(text) == "" {
		return -1, Statusf(400, "Comment can't be empty!")
	}
	id, err := s.db.CreateComment(ctx, author.ID, post.ID, text)
	if err != nil {
		return -1, WrapError(err, "Couldn't create comment")
	}
	return id, nil
}

func (s *BaseAPI) UpdateComment(ctx context.Context, comment *blognova.Comment, actor *blognova.User, text string) error {
	if !s.IsCommentEditor(actor, comment) {
		return Statusf(403, "You can't edit this comment")
	}
	if strings.TrimSpace(text) == "" {
		return Statusf(400, "Comment can't be empty!")
	}
	if err := s.db.UpdateComment(ctx, comment.ID, actor.ID, blognova.CommentUpdate{Text: &text}); err != nil {
		return WrapError(err, "Couldn't update comment")
	}
	return nil
}

func (s *BaseAPI) DeleteComment(ctx context.Context, comment *blognova.Comment, actor *blognova.User) error {
	if !s.IsCommentEditor(actor, comment) {
		return Statusf(403, "You can't delete this comment")
	}
	if err := s.db.DeleteComment(ctx, comment.ID, actor.ID); err != nil {
		return WrapError(err, "Couldn't delete comment")
	}
	slog.InfoContext(ctx, "Removed comment", slog.Int("comment_id", comment.ID), slog.Int("user_id", actor.ID))
	return nil
}

// RenderedCommentText runs a comment through the markdown renderer.
func (s *BaseAPI) RenderedCommentText(comment *blognova.Comment) (template.HTML, error) {
	out, err := s.rd.Render([]byte(comment.Text))
	if err != nil {
		return "", WrapError(err, "Couldn't render comment")
	}
	return template.HTML(out), nil
}
