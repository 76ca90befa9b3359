package handlers

import (
	"errors"
	"net/http"

	"github.com/iamLuCat/portfolio/internal/contact"
	"github.com/iamLuCat/portfolio/internal/services"
)

// GenericFailure is shown for every relay or configuration failure
const GenericFailure = "Oops! Something went wrong. Check your configuration or try again later."

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, contact.ErrMissingFields), errors.Is(err, services.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, contact.ErrMissingToken), errors.Is(err, contact.ErrTokenRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contact.ErrConfigMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, contact.ErrRelayFailed):
		return http.StatusBadGateway
	case errors.Is(err, contact.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// outcome labels a contact submission result for metrics
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, contact.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, contact.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, contact.ErrTokenRejected):
		return "token_rejected"
	case errors.Is(err, contact.ErrConfigMissing):
		return "config_missing"
	case errors.Is(err, contact.ErrRelayFailed):
		return "relay_failed"
	case errors.Is(err, contact.ErrBusy):
		return "busy"
	default:
		return "error"
	}
}

// userMessage is the text the form shows for err
func userMessage(err error) string {
	switch {
	case errors.Is(err, contact.ErrMissingToken):
		return "Please complete the reCAPTCHA verification."
	case errors.Is(err, contact.ErrConfigMissing), errors.Is(err, contact.ErrRelayFailed):
		return GenericFailure
	default:
		return err.Error()
	}
}
