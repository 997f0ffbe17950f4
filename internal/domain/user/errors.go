package user

import "errors"

var (
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)

func IsErrBadRequest(err error) bool { return errors.Is(err, ErrBadRequest) }
func IsErrForbidden(err error) bool  { return errors.Is(err, ErrForbidden) }
func IsErrNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
