package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var (
	ErrForbidden     = errors.New("operation is not permitted for this caller")
	ErrInvalidBody   = errors.New("invalid request body")
	errUnauthorized  = errors.New("caller is not authenticated")
	badRequestErrors = []error{
		errs.ErrValueIsRequired,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		kernel.ErrUUIDIsNotConstructed,
		kernel.ErrCoordinateIsNotFinite,
		kernel.ErrCoordinateIsZero,
		commands.ErrNameIsRequired,
		commands.ErrPhoneIsRequired,
		ErrInvalidBody,
	}
)

// fail writes the error response for err:
//
//	InvalidTransitionError   409, with the allowed targets
//	AlreadyAssignedError     409
//	CourierUnavailableError  422
//	ObjectNotFoundError      404
//	validation errors        400
//	TransientStorageError    503 (retries are exhausted)
//	anything else            500
func (s *Server) fail(ctx echo.Context, err error) error {
	var transition *errs.InvalidTransitionError
	if errors.As(err, &transition) {
		allowed := transition.Allowed
		if allowed == nil {
			allowed = []string{}
		}
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
			Allowed: &allowed,
		})
	}

	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(status)
	}
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCourierUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrTransientStorage):
		return http.StatusServiceUnavailable
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// staff allows dispatchers and the system.
func (s *Server) staff(ctx echo.Context) (Principal, error) {
	p, ok := principalFrom(ctx)
	if !ok {
		return Principal{}, errUnauthorized
	}
	if p.IsCourier() {
		return Principal{}, ErrForbidden
	}
	return p, nil
}

// courierOrStaff allows staff and the courier named by courierID.
func (s *Server) courierOrStaff(ctx echo.Context, courierID kernel.UUID) (Principal, error) {
	p, ok := principalFrom(ctx)
	if !ok {
		return Principal{}, errUnauthorized
	}
	if p.IsCourier() && !p.CourierID.IsEqual(courierID) {
		return Principal{}, ErrForbidden
	}
	return p, nil
}
