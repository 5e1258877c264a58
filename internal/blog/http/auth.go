package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/pkg/blogsdk"
	"github.com/aussiebroadwan/blog/pkg/httpx"
)

const registeredMessage = "User Created Successfully"

// AuthHandler serves token issuance and registration.
type AuthHandler struct {
	TokenService *service.TokenService
	UserService  *service.UserService
}

// HandleToken godoc
//
//	@Summary		Obtain token pair
//	@Description	Checks username and password and returns an access token and a refresh token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		blogsdk.TokenRequest	true	"Credentials"
//	@Success		200		{object}	blogsdk.TokenPair		"access, refresh"
//	@Failure		400		{object}	blogsdk.ErrorResponse	"Missing fields or malformed JSON"
//	@Failure		401		{object}	blogsdk.ErrorResponse	"No active account found with the given credentials"
//	@Failure		429		{object}	blogsdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/token/ [post].
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	var req blogsdk.TokenRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	fields := requiredFields(map[string]string{"username": req.Username, "password": req.Password})
	if fields != nil {
		writeServiceError(w, r, fields)
		return
	}

	pair, err := h.TokenService.ObtainTokenPair(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, blogsdk.TokenPair{Access: pair.Access, Refresh: pair.Refresh})
}

// HandleRefresh godoc
//
//	@Summary		Refresh access token
//	@Description	Exchanges a refresh token for a new access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		blogsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	blogsdk.AccessToken		"access"
//	@Failure		400		{object}	blogsdk.ErrorResponse	"Missing field or malformed JSON"
//	@Failure		401		{object}	blogsdk.ErrorResponse	"Token is invalid or expired"
//	@Router			/token/refresh/ [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req blogsdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	if fields := requiredFields(map[string]string{"refresh": req.Refresh}); fields != nil {
		writeServiceError(w, r, fields)
		return
	}

	access, err := h.TokenService.RefreshToken(r.Context(), req.Refresh)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, blogsdk.AccessToken{Access: access})
}

// HandleRegister godoc
//
//	@Summary		Register a user
//	@Description	Creates an account. Field errors come back as a map of field name to messages.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		blogsdk.RegisterRequest		true	"New account"
//	@Success		201		{object}	blogsdk.RegisterResponse	"user, message"
//	@Failure		400		{object}	map[string][]string			"Field errors"
//	@Failure		429		{object}	blogsdk.ErrorResponse		"Rate limit exceeded"
//	@Router			/register/ [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req blogsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if verr, ok := asValidation(err); ok {
		(&blogsdk.APIError{
			StatusCode: http.StatusBadRequest,
			Code:       blogsdk.CodeValidation,
			Fields:     verr.Fields,
			FieldsOnly: true,
		}).WriteError(w)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, blogsdk.RegisterResponse{
		User:    toUser(user),
		Message: registeredMessage,
	})
}

// requiredFields returns a validation error naming every blank value.
func requiredFields(values map[string]string) *service.ValidationError {
	var verr *service.ValidationError
	for name, v := range values {
		if strings.TrimSpace(v) != "" {
			continue
		}
		if verr == nil {
			verr = &service.ValidationError{Fields: map[string][]string{}}
		}
		verr.Fields[name] = []string{"This field may not be blank."}
	}
	return verr
}
