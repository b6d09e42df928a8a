package handlers

import (
	"errors"
	"net/http"

	"github.com/BradenHooton/reviewhub/internal/models"
	pkghttp "github.com/BradenHooton/reviewhub/pkg/http"
)

// writeServiceError maps a service error onto the JSON error response
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, notFoundMessage)
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "Email is already registered")
	case errors.Is(err, models.ErrForbidden):
		pkghttp.WriteForbidden(w, "Wrong password")
	case errors.Is(err, models.ErrUnprocessable):
		pkghttp.WriteUnprocessable(w, "Unable to process the request")
	case errors.Is(err, models.ErrBadRequest):
		pkghttp.WriteBadRequest(w, "Bad request")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidBody) {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	pkghttp.WriteBadRequest(w, err.Error())
}
