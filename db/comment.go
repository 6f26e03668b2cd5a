package db

import (
	"context"
	"errors"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/jackc/pgx/v5"
)

type dbComment struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	AuthorID int `db:"author_id"`
	PostID   int `db:"post_id"`

	Text string `db:"text"`
}

func (s *DB) Comment(ctx context.Context, filter blognova.CommentFilter) (*blognova.Comment, error) {
	filter.Limit = 1
	return toSingular(ctx, filter, s.Comments)
}

func (s *DB) Comments(ctx context.Context, filter blognova.CommentFilter) ([]*blognova.Comment, error) {
	fb := newFilterBuilder()
	commentParams(filter, fb)

	q := "SELECT * FROM comments WHERE " + fb.Where() + " ORDER BY created_at ASC, id ASC " + FormatLimitOffset(filter.Limit, filter.Offset)
	rows, _ := s.conn.Query(ctx, q, fb.Args()...)
	comments, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbComment])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(comments, s.internalToComment), nil
}

func (s *DB) CountComments(ctx context.Context, filter blognova.CommentFilter) (int, error) {
	fb := newFilterBuilder()
	commentParams(filter, fb)

	var cnt int
	err := s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM comments WHERE "+fb.Where(), fb.Args()...).Scan(&cnt)
	if err != nil {
		return -1, err
	}
	return cnt, nil
}

// CreateComment pins author and post at insert time: there is no update path
// for either column.
func (s *DB) CreateComment(ctx context.Context, authorID, postID int, text string) (int, error) {
	if text == "" || authorID == 0 || postID == 0 {
		return -1, blognova.ErrMissingRequired
	}
	rows, _ := s.conn.Query(ctx, "INSERT INTO comments (author_id, post_id, text) VALUES ($1, $2, $3) RETURNING id", authorID, postID, text)
	id, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return -1, err
	}
	return id, nil
}

// UpdateComment rewrites the text only while authorID still owns the row.
func (s *DB) UpdateComment(ctx context.Context, id int, authorID int, upd blognova.CommentUpdate) error {
	ub := newUpdateBuilder()
	if v := upd.Text; v != nil {
		ub.AddUpdate("text = %s", v)
	}
	if err := ub.CheckUpdates(); err != nil {
		return err
	}
	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", id)
	fb.AddConstraint("author_id = %s", authorID)
	tag, err := s.conn.Exec(ctx, "UPDATE comments SET "+fb.WithUpdate(), fb.Args()...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}

func (s *DB) DeleteComment(ctx context.Context, id int, authorID int) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM comments WHERE id = $1 AND author_id = $2", id, authorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}

func commentParams(filter blognova.CommentFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.AuthorID; v != nil {
		fb.AddConstraint("author_id = %s", v)
	}
	if v := filter.PostID; v != nil {
		fb.AddConstraint("post_id = %s", v)
	}
}

func (s *DB) internalToComment(c *dbComment) *blognova.Comment {
	return &blognova.Comment{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,

		AuthorID: c.AuthorID,
		PostID:   c.PostID,

		Text: c.Text,
	}
}
