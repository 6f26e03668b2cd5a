package sudoapi

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/db"
)

func (s *BaseAPI) Post(ctx context.Context, id int) (*blognova.Post, error) {
	post, err := s.db.Post(ctx, blognova.PostFilter{ID: &id})
	if err != nil {
		return nil, WrapError(err, "Couldn't find post")
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// VisiblePost resolves a post for a given viewer, collapsing both "absent"
// and "hidden from this viewer" into not-found.
func (s *BaseAPI) VisiblePost(ctx context.Context, id int, user *blognova.User) (*blognova.Post, error) {
	post, err := s.Post(ctx, id)
	if err != nil {
		return nil, err
	}
	var category *blognova.Category
	if post.CategoryID != nil {
		category, err = s.CategoryByID(ctx, *post.CategoryID)
		if err != nil && blognova.ErrorCode(err) != 404 {
			return nil, err
		}
	}
	if !s.IsPostVisible(user, post, category, time.Now()) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *BaseAPI) Posts(ctx context.Context, filter blognova.PostFilter) ([]*blognova.Post, error) {
	posts, err := s.db.Posts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("couldn't find posts: %w", err)
	}
	if posts == nil {
		posts = []*blognova.Post{}
	}
	return posts, nil
}

func (s *BaseAPI) CountPosts(ctx context.Context, filter blognova.PostFilter) (int, error) {
	cnt, err := s.db.CountPosts(ctx, filter)
	if err != nil {
		return -1, fmt.Errorf("couldn't count posts: %w", err)
	}
	return cnt, nil
}

type PostCreateArgs struct {
	Title string
	Text  string

	PubDate   time.Time
	Published bool

	CategoryID *int
	LocationID *int
	ImageURL   *string
}

// CreatePost creates a post on behalf of author. The author comes from the
// session, never from client input.
func (s *BaseAPI) CreatePost(ctx context.Context, author *blognova.User, args PostCreateArgs) (int, error) {
	if !author.IsAuthed() {
		return -1, Statusf(401, "You must be logged in to create posts")
	}
	args.Title = strings.TrimSpace(args.Title)
	if args.Title == "" {
		return -1, Statusf(400, "Title can't be empty!")
	}
	if strings.TrimSpace(args.Text) == "" {
		return -1, Statusf(400, "Post text can't be empty!")
	}
	id, err := s.db.CreatePost(ctx, db.PostCreate{
		AuthorID: author.ID,
		Title:    args.Title,
		Text:     args.Text,

		PubDate:   args.PubDate,
		Published: args.Published,

		CategoryID: args.CategoryID,
		LocationID: args.LocationID,
		ImageURL:   args.ImageURL,
	})
	if err != nil {
		return -1, WrapError(err, "Couldn't create post")
	}
	return id, nil
}

// UpdatePost applies upd as the given actor. Non-authors get not-found from
// the ownership-guarded statement, so no change is ever applied for them.
func (s *BaseAPI) UpdatePost(ctx context.Context, post *blognova.Post, actor *blognova.User, upd blognova.PostUpdate) error {
	if !s.IsPostEditor(actor, post) {
		return Statusf(403, "You can't edit this post")
	}
	if upd.Title != nil {
		*upd.Title = strings.TrimSpace(*upd.Title)
		if *upd.Title == "" {
			return Statusf(400, "Title can't be empty!")
		}
	}
	if err := s.db.UpdatePost(ctx, post.ID, actor.ID, upd); err != nil {
		if blognova.ErrorCode(err) == 400 {
			return err
		}
		return WrapError(err, "Couldn't update post")
	}
	return nil
}

func (s *BaseAPI) DeletePost(ctx context.Context, post *blognova.Post, actor *blognova.User) error {
	if !s.IsPostEditor(actor, post) {
		return Statusf(403, "You can't delete this post")
	}
	if err := s.db.DeletePost(ctx, post.ID, actor.ID); err != nil {
		return WrapError(err, "Couldn't delete post")
	}
	slog.InfoContext(ctx, "Removed post", slog.Int("post_id", post.ID), slog.Int("user_id", actor.ID))
	return nil
}

// RenderedPostText runs the post body through the markdown renderer.
func (s *BaseAPI) RenderedPostText(post *blognova.Post) (template.HTML, error) {
	out, err := s.rd.Render([]byte(post.Text))
	if err != nil {
		return "", WrapError(err, "Couldn't render post text")
	}
	return template.HTML(out), nil
}
