package http

import (
	"net/http"

	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/pkg/httpx"
)

// UserHandler serves the authenticated user at /user/.
type UserHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Returns id, username and email of the caller.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	blogsdk.User			"id, username, email"
//	@Failure		401	{object}	blogsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/user/ [get].
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.UserService.GetCurrentUser(ctx, callerFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}
