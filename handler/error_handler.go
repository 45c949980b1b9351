package handler

import (
	"errors"
	"net/http"

	"go-atm/common"
	"go-atm/service"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// serviceError maps a core result to its HTTP status and structured details.
func serviceError(err error) *common.AppError {
	var pinErr *service.InvalidPinError
	var limitErr *service.DailyLimitError

	switch {
	case errors.As(err, &pinErr):
		return common.NewAppError(http.StatusUnauthorized, service.ErrInvalidPin.Error(), err).
			WithDetail("remaining_attempts", pinErr.RemainingAttempts)
	case errors.As(err, &limitErr):
		return common.NewAppError(http.StatusUnprocessableEntity, err.Error(), err).
			WithDetail("type", limitErr.Kind).
			WithDetail("limit", limitErr.Limit.String())
	case errors.Is(err, service.ErrCardBlocked):
		return common.NewAppError(http.StatusLocked, err.Error(), err)
	case errors.Is(err, service.ErrMalformedCard),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidPinFormat),
		errors.Is(err, service.ErrNegativeBalance),
		errors.Is(err, service.ErrAmountOutOfRange),
		errors.Is(err, service.ErrUnknownKind):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrAccountNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, service.ErrAccountExists):
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrInvalidToken):
		return common.NewAppError(http.StatusUnauthorized, "Invalid or expired session", err)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}
