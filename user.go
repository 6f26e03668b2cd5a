package blognova

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`

	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Bio       string `json:"bio"`
}

// IsAuthed is safe to call on a nil user, which represents an anonymous
// visitor everywhere viewer identity is passed around.
func (u *User) IsAuthed() bool {
	return u != nil && u.ID > 0
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName == "" && u.LastName == "" {
		return u.Name
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserFilter is the struct with all filterable fields on the user.
// It also provides a Limit and Offset field, for pagination.
type UserFilter struct {
	ID  *int  `json:"id"`
	IDs []int `json:"ids"`

	// Name is case insensitive
	Name  *string `json:"name"`
	Email *string `json:"email"`

	SessionID *string `json:"-"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// UserUpdate is the struct with all updatable fields on the user.
type UserUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	PwdHash *string `json:"-"`

	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), err
}
