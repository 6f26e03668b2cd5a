package db

import (
	"context"
	"errors"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/jackc/pgx/v5"
)

type dbLocation struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Name      string `db:"name"`
	Published bool   `db:"published"`
}

func (s *DB) Location(ctx context.Context, filter blognova.LocationFilter) (*blognova.Location, error) {
	filter.Limit = 1
	return toSingular(ctx, filter, s.Locations)
}

func (s *DB) Locations(ctx context.Context, filter blognova.LocationFilter) ([]*blognova.Location, error) {
	fb := newFilterBuilder()
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.Published; v != nil {
		fb.AddConstraint("published = %s", v)
	}

	q := "SELECT * FROM locations WHERE " + fb.Where() + " ORDER BY name ASC, id ASC " + FormatLimitOffset(filter.Limit, filter.Offset)
	rows, _ := s.conn.Query(ctx, q, fb.Args()...)
	locations, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbLocation])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(locations, func(l *dbLocation) *blognova.Location {
		return &blognova.Location{ID: l.ID, CreatedAt: l.CreatedAt, Name: l.Name, Published: l.Published}
	}), nil
}

func (s *DB) CreateLocation(ctx context.Context, name string, published bool) (int, error) {
	if name == "" {
		return -1, blognova.ErrMissingRequired
	}
	rows, _ := s.conn.Query(ctx, "INSERT INTO locations (name, published) VALUES ($1, $2) RETURNING id", name, published)
	id, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return -1, err
	}
	return id, nil
}

// DeleteLocation nullifies the location on referencing posts through the FK.
func (s *DB) DeleteLocation(ctx context.Context, id int) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM locations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}
