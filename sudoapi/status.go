package sudoapi

import (
	"github.com/KiloProjects/blognova"
)

var (
	ErrNoUpdates       = blognova.ErrNoUpdates
	ErrMissingRequired = blognova.ErrMissingRequired

	ErrNotFound     = blognova.ErrNotFound
	ErrUnknownError = blognova.ErrUnknownError
)

type StatusError = blognova.StatusError

// Reimplement Statusf and WrapError functions here for faster reference

func Statusf(status int, format string, args ...any) *StatusError {
	return blognova.Statusf(status, format, args...)
}

func WrapError(err error, text string) *StatusError {
	return blognova.WrapError(err, text)
}
