package api

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var unameValidation = []validation.Rule{validation.Required, validation.Length(3, 32), is.PrintableASCII}
var pwdValidation = []validation.Rule{validation.Required, validation.Length(6, 128)}

type signupForm struct {
	Username string
	Email    string
	Password string
}

func (s signupForm) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Username, unameValidation...),
		validation.Field(&s.Email, validation.Required, is.Email),
		validation.Field(&s.Password, pwdValidation...),
	)
}

func (s *API) signup(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var auth signupForm
	if err := decoder.Decode(&auth, r.Form); err != nil {
		errorData(w, err, http.StatusBadRequest)
		return
	}
	if err := auth.Validate(); err != nil {
		errorData(w, err.Error(), http.StatusBadRequest)
		return
	}

	uid, err := s.base.Signup(r.Context(), auth.Email, auth.Username, auth.Password)
	if err != nil {
		statusError(w, err)
		return
	}

	sid, err := s.base.CreateSession(r.Context(), uid)
	if err != nil {
		errorData(w, "Could not set session", 500)
		return
	}
	returnData(w, sid)
}

type loginForm struct {
	Username string
	Password string
}

func (l loginForm) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Username, unameValidation...),
		validation.Field(&l.Password, pwdValidation...),
	)
}

func (s *API) login(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var auth loginForm
	if err := decoder.Decode(&auth, r.Form); err != nil {
		errorData(w, err, http.StatusBadRequest)
		return
	}
	if err := auth.Validate(); err != nil {
		errorData(w, err, http.StatusBadRequest)
		return
	}

	uid, err := s.base.Login(r.Context(), auth.Username, auth.Password)
	if err != nil {
		statusError(w, err)
		return
	}

	sid, err := s.base.CreateSession(r.Context(), uid)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, sid)
}

func (s *API) logout(w http.ResponseWriter, r *http.Request) {
	token := s.getAuthToken(r)
	if token == "" {
		errorData(w, "You are already logged out!", 400)
		return
	}
	s.base.RemoveSession(r.Context(), token)
	returnData(w, "Logged out")
}
