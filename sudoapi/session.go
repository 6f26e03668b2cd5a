package sudoapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KiloProjects/blognova"
)

func (s *BaseAPI) CreateSession(ctx context.Context, uid int) (string, *StatusError) {
	sid, err := s.db.CreateSession(ctx, uid)
	if err != nil {
		slog.WarnContext(ctx, "Failed to create session", slog.Any("err", err))
		return "", WrapError(err, "Failed to create session")
	}
	if removed, err := s.db.RemoveOldSessions(ctx, uid); err != nil {
		slog.WarnContext(ctx, "Failed to remove old sessions", slog.Any("err", err))
	} else {
		for _, sess := range removed {
			s.sessionUserCache.Delete(sess)
		}
	}
	return sid, nil
}

func (s *BaseAPI) GetSession(ctx context.Context, sid string) (int, *StatusError) {
	uid, err := s.db.GetSession(ctx, sid)
	if err != nil {
		return -1, WrapError(ErrNotFound, "Session not found")
	}
	return uid, nil
}

func (s *BaseAPI) RemoveSession(ctx context.Context, sid string) *StatusError {
	if err := s.db.RemoveSession(ctx, sid); err != nil {
		slog.WarnContext(ctx, "Failed to remove session", slog.Any("err", err))
		return WrapError(err, "Failed to remove session")
	}
	s.sessionUserCache.Delete(sid)
	return nil
}

// sessionUser is the uncached session to user lookup. Use SessionUser.
func (s *BaseAPI) sessionUser(ctx context.Context, sid string) (*blognova.User, error) {
	if sid == "" {
		return nil, nil
	}
	user, err := s.db.User(ctx, blognova.UserFilter{SessionID: &sid})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SessionUser returns the user the session belongs to, nil if the
// session is missing or expired. Results are cached for a few seconds,
// so a just-removed session may still resolve briefly.
func (s *BaseAPI) SessionUser(ctx context.Context, sid string) (*blognova.User, *StatusError) {
	user, err := s.sessionUserCache.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, WrapError(err, "Context canceled")
		}
		slog.WarnContext(ctx, "Failed to get session user", slog.Any("err", err))
		return nil, WrapError(err, "Failed to get session user")
	}
	return user, nil
}

// GetSessCookie reads the session ID from the request cookie. Empty
// string means no session.
func (s *BaseAPI) GetSessCookie(r *http.Request) string {
	cookie, err := r.Cookie("bn-sessionid")
	if err != nil {
		return ""
	}
	return cookie.Value
}
