package db

import (
	"context"
	"errors"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/jackc/pgx/v5"
)

type dbCategory struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Title       string `db:"title"`
	Description string `db:"description"`

	Slug      string `db:"slug"`
	Published bool   `db:"published"`
}

func (s *DB) Category(ctx context.Context, filter blognova.CategoryFilter) (*blognova.Category, error) {
	filter.Limit = 1
	return toSingular(ctx, filter, s.Categories)
}

func (s *DB) Categories(ctx context.Context, filter blognova.CategoryFilter) ([]*blognova.Category, error) {
	fb := newFilterBuilder()
	categoryParams(filter, fb)

	q := "SELECT * FROM categories WHERE " + fb.Where() + " ORDER BY title ASC, id ASC " + FormatLimitOffset(filter.Limit, filter.Offset)
	rows, _ := s.conn.Query(ctx, q, fb.Args()...)
	categories, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbCategory])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(categories, s.internalToCategory), nil
}

func (s *DB) CreateCategory(ctx context.Context, title, description, slug string, published bool) (int, error) {
	if title == "" || slug == "" {
		return -1, blognova.ErrMissingRequired
	}
	rows, _ := s.conn.Query(ctx,
		"INSERT INTO categories (title, description, slug, published) VALUES ($1, $2, $3, $4) RETURNING id",
		title, description, slug, published,
	)
	id, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return -1, err
	}
	return id, nil
}

// DeleteCategory nullifies the category on referencing posts through the FK,
// it never deletes them.
func (s *DB) DeleteCategory(ctx context.Context, id int) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}

func categoryParams(filter blognova.CategoryFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.Slug; v != nil {
		fb.AddConstraint("slug = %s", v)
	}
	if v := filter.Published; v != nil {
		fb.AddConstraint("published = %s", v)
	}
}

func (s *DB) internalToCategory(c *dbCategory) *blognova.Category {
	return &blognova.Category{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,

		Title:       c.Title,
		Description: c.Description,

		Slug:      c.Slug,
		Published: c.Published,
	}
}
