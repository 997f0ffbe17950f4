package media

import "errors"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotConfigured = errors.New("uploads not configured")
)

func IsErrBadRequest(err error) bool    { return errors.Is(err, ErrBadRequest) }
func IsErrNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }
