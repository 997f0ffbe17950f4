package http

import (
	"net/http"

	"fitness-tracker/backend/internal/domain/booking"
	"fitness-tracker/backend/internal/domain/class"
	"fitness-tracker/backend/internal/domain/community"
	"fitness-tracker/backend/internal/domain/media"
	"fitness-tracker/backend/internal/domain/payment"
	"fitness-tracker/backend/internal/domain/trainer"
	"fitness-tracker/backend/internal/domain/user"

	"github.com/sirupsen/logrus"
)

const internalMessage = "internal server error"

type errorMapper func(err error) (int, string)

// failWith writes the mapped status. Upstream failures are logged and
// answered with a generic message.
func failWith(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error, mappers ...errorMapper) {
	for _, m := range mappers {
		if status, msg := m(err); status != 0 {
			Fail(w, status, msg)
			return
		}
	}
	log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	Fail(w, http.StatusInternalServerError, internalMessage)
}

func mapUserError(err error) (int, string) {
	switch {
	case user.IsErrBadRequest(err):
		return 400, err.Error()
	case user.IsErrForbidden(err):
		return 403, err.Error()
	case user.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 0, ""
	}
}

func mapTrainerError(err error) (int, string) {
	switch {
	case trainer.IsErrBadRequest(err):
		return 400, err.Error()
	case trainer.IsErrForbidden(err):
		return 403, err.Error()
	case trainer.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 0, ""
	}
}

func mapClassError(err error) (int, string) {
	switch {
	case class.IsErrBadRequest(err):
		return 400, err.Error()
	case class.IsErrNotFound(err):
		return 404, err.Error()
	default:
		return 0, ""
	}
}

func mapBookingError(err error) (int, string) {
	switch {
	case booking.IsErrBadRequest(err):
		return 400, err.Error()
	case booking.IsErrForbidden(err):
		return 403, err.Error()
	default:
		return 0, ""
	}
}

func mapCommunityError(err error) (int, string) {
	if community.IsErrBadRequest(err) {
		return 400, err.Error()
	}
	return 0, ""
}

// Gateway errors carry the gateway's own message back to the client.
func mapPaymentError(err error) (int, string) {
	switch {
	case payment.IsErrBadRequest(err):
		return 400, err.Error()
	case payment.IsErrNotConfigured(err):
		return 501, err.Error()
	case payment.IsErrGateway(err):
		return 500, err.Error()
	default:
		return 0, ""
	}
}

func mapMediaError(err error) (int, string) {
	switch {
	case media.IsErrBadRequest(err):
		return 400, err.Error()
	case media.IsErrNotConfigured(err):
		return 501, err.Error()
	default:
		return 0, ""
	}
}
