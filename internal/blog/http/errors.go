package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/pkg/blogsdk"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto API errors.
// Anything unrecognised is logged and becomes a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		(&blogsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       blogsdk.CodeValidation,
			Message:    "invalid input",
			Fields:     verr.Fields,
		}).WriteError(w)
	case errors.Is(err, service.ErrUnauthenticated):
		blogsdk.ErrNotAuthenticated.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		blogsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidRefresh):
		blogsdk.ErrInvalidRefresh.WriteError(w)
	case errors.Is(err, service.ErrPostNotFound):
		blogsdk.ErrNotFound.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		blogsdk.ErrServer.WriteError(w)
	}
}

// writeBadJSON reports a body that could not be decoded.
func writeBadJSON(w http.ResponseWriter, err error) {
	blogsdk.NewAPIError(http.StatusBadRequest, blogsdk.CodeInvalidJSON, err.Error()).WriteError(w)
}
