package db

import (
	"context"
	"errors"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/jackc/pgx/v5"
)

type dbUser struct {
	ID        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`

	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Bio       string `db:"bio"`
}

func (s *DB) User(ctx context.Context, filter blognova.UserFilter) (*blognova.User, error) {
	filter.Limit = 1
	return toSingular(ctx, filter, s.Users)
}

func (s *DB) Users(ctx context.Context, filter blognova.UserFilter) ([]*blognova.User, error) {
	fb := newFilterBuilder()
	userParams(filter, fb)

	q := "SELECT * FROM users WHERE " + fb.Where() + " ORDER BY id ASC " + FormatLimitOffset(filter.Limit, filter.Offset)
	rows, _ := s.conn.Query(ctx, q, fb.Args()...)
	users, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[dbUser])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapper(users, s.internalToUser), nil
}

func (s *DB) CountUsers(ctx context.Context, filter blognova.UserFilter) (int, error) {
	fb := newFilterBuilder()
	userParams(filter, fb)

	var cnt int
	err := s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE "+fb.Where(), fb.Args()...).Scan(&cnt)
	if err != nil {
		return -1, err
	}
	return cnt, nil
}

// UserExists says whether a user matches either a specific username
// (case-insensitive) or a specific email address.
func (s *DB) UserExists(ctx context.Context, username string, email string) (bool, error) {
	cnt, err := s.CountUsers(ctx, blognova.UserFilter{Name: &username})
	if err == nil && cnt > 0 {
		return true, nil
	}
	cnt, err = s.CountUsers(ctx, blognova.UserFilter{Email: &email})
	return cnt > 0, err
}

func (s *DB) CreateUser(ctx context.Context, name, email, pwdHash string) (int, error) {
	if name == "" || email == "" || pwdHash == "" {
		return -1, blognova.ErrMissingRequired
	}
	rows, _ := s.conn.Query(ctx, "INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id", name, email, pwdHash)
	id, err := pgx.CollectOneRow(rows, pgx.RowTo[int])
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (s *DB) UpdateUser(ctx context.Context, id int, upd blognova.UserUpdate) error {
	ub := newUpdateBuilder()
	if v := upd.Name; v != nil {
		ub.AddUpdate("name = %s", v)
	}
	if v := upd.Email; v != nil {
		ub.AddUpdate("email = %s", v)
	}
	if v := upd.PwdHash; v != nil {
		ub.AddUpdate("password = %s", v)
	}
	if v := upd.FirstName; v != nil {
		ub.AddUpdate("first_name = %s", v)
	}
	if v := upd.LastName; v != nil {
		ub.AddUpdate("last_name = %s", v)
	}
	if v := upd.Bio; v != nil {
		ub.AddUpdate("bio = %s", v)
	}
	if err := ub.CheckUpdates(); err != nil {
		return err
	}
	fb := ub.MakeFilter()
	fb.AddConstraint("id = %s", id)
	_, err := s.conn.Exec(ctx, "UPDATE users SET "+fb.WithUpdate(), fb.Args()...)
	return err
}

// DeleteUser cascades to the user's posts and comments through the FKs.
func (s *DB) DeleteUser(ctx context.Context, id int) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return blognova.ErrNotFound
	}
	return nil
}

func userParams(filter blognova.UserFilter, fb *filterBuilder) {
	if v := filter.ID; v != nil {
		fb.AddConstraint("id = %s", v)
	}
	if v := filter.IDs; v != nil {
		fb.AddConstraint("id = ANY(%s)", v)
	}
	if v := filter.Name; v != nil {
		fb.AddConstraint("lower(name) = lower(%s)", v)
	}
	if v := filter.Email; v != nil {
		fb.AddConstraint("lower(email) = lower(%s)", v)
	}
	if v := filter.SessionID; v != nil {
		fb.AddConstraint("EXISTS (SELECT 1 FROM sessions WHERE sessions.user_id = users.id AND sessions.id = %s AND sessions.created_at > NOW() - INTERVAL '30 days')", v)
	}
}

func (s *DB) internalToUser(u *dbUser) *blognova.User {
	return &blognova.User{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,

		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
	}
}
