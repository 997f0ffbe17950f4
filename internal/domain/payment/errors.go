package payment

import "errors"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrGateway       = errors.New("payment gateway error")
	ErrNotConfigured = errors.New("payments not configured")
)

func IsErrBadRequest(err error) bool    { return errors.Is(err, ErrBadRequest) }
func IsErrGateway(err error) bool       { return errors.Is(err, ErrGateway) }
func IsErrNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }
