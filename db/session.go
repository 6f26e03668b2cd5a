package db

import (
	"context"
	"errors"
	"time"

	"github.com/KiloProjects/blognova"
)

// Rows older than this are treated as dead, skipped on lookup and reaped
// by RemoveOldSessions.
const sessionMaxAge = 30 * 24 * time.Hour

var errSessionExpired = errors.New("session expired")

func (s *DB) CreateSession(ctx context.Context, uid int) (string, error) {
	sid := blognova.RandomString(16)
	_, err := s.conn.Exec(ctx, "INSERT INTO sessions (id, user_id) VALUES ($1, $2)", sid, uid)
	if err != nil {
		return "", err
	}
	return sid, nil
}

func (s *DB) GetSession(ctx context.Context, sid string) (int, error) {
	var userID int
	var createdAt time.Time
	err := s.conn.QueryRow(ctx, "SELECT user_id, created_at FROM sessions WHERE id = $1", sid).Scan(&userID, &createdAt)
	if err != nil {
		return -1, err
	}
	if time.Since(createdAt) > sessionMaxAge {
		return -1, errSessionExpired
	}
	return userID, nil
}

func (s *DB) RemoveSession(ctx context.Context, sid string) error {
	_, err := s.conn.Exec(ctx, "DELETE FROM sessions WHERE id = $1", sid)
	return err
}

// RemoveOldSessions reaps the user's expired sessions and returns the
// removed IDs so cache entries can be dropped as well.
func (s *DB) RemoveOldSessions(ctx context.Context, uid int) ([]string, error) {
	rows, err := s.conn.Query(ctx, "DELETE FROM sessions WHERE user_id = $1 AND created_at < NOW() - INTERVAL '30 days' RETURNING id", uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sids []string
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return nil, err
		}
		sids = append(sids, sid)
	}
	return sids, rows.Err()
}
