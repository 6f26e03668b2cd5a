package sudoapi

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/KiloProjects/blognova"
	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"
)

// Login

func (s *BaseAPI) Login(ctx context.Context, uname, pwd string) (int, *StatusError) {
	user, err := s.db.User(ctx, blognova.UserFilter{Name: &uname})
	if err != nil || user == nil {
		return -1, Statusf(400, "Invalid username or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(pwd))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return -1, Statusf(400, "Invalid username or password")
	} else if err != nil {
		// This should never happen. It means that bcrypt suffered something
		slog.WarnContext(ctx, "Couldn't compare password hash", slog.Any("err", err))
		return -1, ErrUnknownError
	}

	return user.ID, nil
}

// Signup

func (s *BaseAPI) Signup(ctx context.Context, email, uname, pwd string) (int, *StatusError) {
	uname = strings.TrimSpace(uname)
	if !(len(uname) >= 3 && len(uname) <= 32 && govalidator.IsPrintableASCII(uname)) {
		return -1, Statusf(400, "Invalid username.")
	}
	if len(pwd) < 6 || len(pwd) > 128 {
		return -1, Statusf(400, "Invalid password length.")
	}
	if !govalidator.IsExistingEmail(email) {
		return -1, Statusf(400, "Invalid email.")
	}

	if exists, err := s.db.UserExists(ctx, uname, email); err != nil || exists {
		return -1, Statusf(400, "User matching email or username already exists!")
	}

	hash, err := blognova.HashPassword(pwd)
	if err != nil {
		slog.WarnContext(ctx, "Couldn't hash password", slog.Any("err", err))
		return -1, Statusf(500, "Couldn't create user")
	}

	id, err := s.db.CreateUser(ctx, uname, email, hash)
	if err != nil {
		slog.WarnContext(ctx, "Couldn't create user", slog.Any("err", err))
		return -1, Statusf(500, "Couldn't create user")
	}

	return id, nil
}
