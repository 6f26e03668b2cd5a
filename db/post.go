package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/jackc/pgx/v5"
)

type dbPost struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	AuthorID  int       `db:"author_id"`

	Title string `db:"title"`
	Text  string `db:"text"`

	PubDate   time.Time `db:"pub_date"`
	Published bool      `db:"published"`

	CategoryID *int    `db:"category_id"`
	LocationID *int    `db:"location_id"`
	ImageURL   *string `db:"image_url"`

	CommentCount int `db:"comment_count"`
}

const postSelectColumns = `posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count`

func (s *DB) Post(ctx context.Context, filter blognova.PostFilter) (*blognova.Post, error) {
	filter.Limit = 1
	return toSingular(ctx, filter, s.Posts)
}

func (s *DB) Posts(ctx context.Context, filter blognova.PostFilter) ([]*blognova.Post, error) {
	fb := newFilterBuilder()
	postParams(filter, fb)

	q := fmt.Sprintf("SELECT %s FROM posts WHERE %s %s %s", postSelectColumns, fb.Where(), getPostOrdering(filter.Ordering, filter.Ascending), FormatLimitOffset(filter.Limit, filter.Offset))
	rows, _ := s.conn.Query(ctx, q, fb.Args()...)
	posts, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbPost])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(posts, s.internalToPost), nil
}

func (s *DB) CountPosts(ctx context.Context, filter blognova.PostFilter) (int, error) {
	fb := newFilterBuilder()
	postParams(filter, fb)

	var cnt int
	err := s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM posts WHERE "+fb.Where(), fb.Args()...).Scan(&cnt)
	if err != nil {
		return -1, err
	}
	return cnt, nil
}

type PostCreate struct {
	AuthorID int
	Title    string
	Text     string

	PubDate   time.Time
	Published bool

	CategoryID *int
	LocationID *int
	ImageURL   *string
}

func (s *DB) CreatePost(ctx context.Context, args PostCreate) (int, error) {
	if args.Title == "" || args.AuthorID == 0 {
		return -1, blognova.ErrMissingRequired
	}
	if args.PubDate.IsZero() {
		args.PubDate = time.Now()
	}
	rows, _ := s.conn.Query(ctx,
		`INSERT INTO posts (author_id, title, text, pub_date, published, category_id, location_id, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		args.AuthorID, args.Title, args.Text, args.PubDate, args.Published, args.CategoryID, args.LocationID, args.ImageURL,
	)
	id, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return -1, err
	}
	return id, nil
}

// UpdatePost applies upd to the post, but only if authorID still owns the
// row. The ownership test is part of the statement so a concurrent deletion
// or reassignment can't slip between check and write.
func (s *DB) UpdatePost(ctx context.Context, id int, authorID int, upd blognova.PostUpdate) error {
	ub := newUpdateBuilder()
	if v := upd.Title; v != nil {
		ub.AddUpdate("title = %s", v)
	}
	if v := upd.Text; v != nil {
		ub.AddUpdate("text = %s", v)
	}
	if v := upd.PubDate; v != nil {
		ub.AddUpdate("pub_date = %s", v)
	}
	if v := upd.Published; v != nil {
		ub.AddUpdate("published = %s", v)
	}
	if upd.SetCategory {
		ub.AddUpdate("category_id = %s", upd.CategoryID)
	}
	if upd.SetLocation {
		ub.AddUpdate("location_id = %s", upd.LocationID)
	}
	if upd.SetImage {
		ub.AddUpdate("image_url = %s", upd.ImageURL)
	}
	if err := ub.CheckUpdates(); err != nil {
		return err
	}
	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", id)
	fb.AddConstraint("author_id = %s", authorID)
	tag, err := s.conn.Exec(ctx, "UPDATE posts SET "+fb.WithUpdate(), fb.Args()...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}

// DeletePost removes the post only if authorID owns it; comments go away
// through the FK cascade.
func (s *DB) DeletePost(ctx context.Context, id int, authorID int) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM posts WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}

func postParams(filter blognova.PostFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.IDs; v != nil {
		fb.AddConstraint("id = ANY(%s)", v)
	}
	if v := filter.AuthorID; v != nil {
		fb.AddConstraint("author_id = %s", v)
	}
	if v := filter.CategoryID; v != nil {
		fb.AddConstraint("category_id = %s", v)
	}
	if v := filter.CategorySlug; v != nil {
		fb.AddConstraint("EXISTS (SELECT 1 FROM categories WHERE categories.id = posts.category_id AND categories.slug = %s)", v)
	}
	if v := filter.LocationID; v != nil {
		fb.AddConstraint("location_id = %s", v)
	}

	if filter.Look {
		var id int = 0
		if filter.LookingUser != nil {
			id = filter.LookingUser.ID
		}

		fb.AddConstraint(`(
			(posts.published = true
				AND posts.pub_date <= NOW()
				AND EXISTS (SELECT 1 FROM categories WHERE categories.id = posts.category_id AND categories.published = true))
			OR posts.author_id = %s
		)`, id)
	}
}

func getPostOrdering(ordering string, ascending bool) string {
	ord := " DESC"
	if ascending {
		ord = " ASC"
	}
	switch ordering {
	case "created_at":
		return "ORDER BY created_at" + ord + ", id DESC"
	case "id":
		return "ORDER BY id" + ord
	default:
		return "ORDER BY pub_date" + ord + ", id DESC"
	}
}

func (s *DB) internalToPost(p *dbPost) *blognova.Post {
	return &blognova.Post{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		AuthorID:  p.AuthorID,

		Title: p.Title,
		Text:  p.Text,

		PubDate:   p.PubDate,
		Published: p.Published,

		CategoryID: p.CategoryID,
		LocationID: p.LocationID,
		ImageURL:   p.ImageURL,

		CommentCount: p.CommentCount,
	}
}
