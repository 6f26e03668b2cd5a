package sudoapi

import (
	"context"
	"fmt"

	"github.com/KiloProjects/blognova"
)

func (s *BaseAPI) UserByID(ctx context.Context, id int) (*blognova.User, error) {
	user, err := s.db.User(ctx, blognova.UserFilter{ID: &id})
	if err != nil {
		return nil, WrapError(err, "Couldn't find user")
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *BaseAPI) UserByName(ctx context.Context, name string) (*blognova.User, error) {
	user, err := s.db.User(ctx, blognova.UserFilter{Name: &name})
	if err != nil {
		return nil, WrapError(err, "Couldn't find user")
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *BaseAPI) Users(ctx context.Context, filter blognova.UserFilter) ([]*blognova.User, error) {
	users, err := s.db.Users(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("couldn't find users: %w", err)
	}
	if users == nil {
		users = []*blognova.User{}
	}
	return users, nil
}

// UsersByIDs returns a lookup map for annotating lists of posts or comments
// with their authors.
func (s *BaseAPI) UsersByIDs(ctx context.Context, ids []int) (map[int]*blognova.User, error) {
	users, err := s.Users(ctx, blognova.UserFilter{IDs: ids})
	if err != nil {
		return nil, err
	}
	userMap := make(map[int]*blognova.User)
	for _, user := range users {
		userMap[user.ID] = user
	}
	return userMap, nil
}

// UpdateProfile lets a user change their own identity fields. Only the
// profile owner gets here; name collisions surface as a 400.
func (s *BaseAPI) UpdateProfile(ctx context.Context, actor *blognova.User, profile *blognova.User, upd blognova.UserUpdate) error {
	if !s.IsProfileOwner(actor, profile) {
		return Statusf(403, "You can only edit your own profile")
	}
	if upd.Name != nil && *upd.Name != profile.Name {
		other, err := s.db.User(ctx, blognova.UserFilter{Name: upd.Name})
		if err != nil {
			return WrapError(err, "Couldn't check username availability")
		}
		if other != nil && other.ID != profile.ID {
			return Statusf(400, "Username is already taken")
		}
	}
	if err := s.db.UpdateUser(ctx, profile.ID, upd); err != nil {
		if blognova.ErrorCode(err) == 400 {
			return err
		}
		return WrapError(err, "Couldn't update profile")
	}
	// the session user cache holds the row for up to 20s, stale display
	// fields right after a profile edit self-correct on expiry
	return nil
}
