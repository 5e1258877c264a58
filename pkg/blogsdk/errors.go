package blogsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aussiebroadwan/blog/pkg/httpx"
)

// Error codes carried in the "code" field of error responses.
const (
	CodeInvalidJSON      = "invalid_json"
	CodeValidation       = "validation_error"
	CodeNotAuthenticated = httpx.CodeNotAuthenticated
	CodeInvalidToken     = httpx.CodeInvalidToken
	CodeForbidden        = "permission_denied"
	CodeNotFound         = "not_found"
	CodeSaveFailed       = "save_failed"
	CodeServerError      = "server_error"
	CodeRateLimited      = httpx.CodeRateLimited
)

// APIError is an error response from the API. The server writes it with
// WriteError and the client decodes it from non-2xx responses.
type APIError struct {
	StatusCode int                 `json:"-"`
	Code       string              `json:"code,omitempty"`
	Message    string              `json:"error"`
	Fields     map[string][]string `json:"fields,omitempty"`

	// FieldsOnly writes Fields as the whole body, the shape used by
	// /register/ for field errors: {"username": ["..."]}.
	FieldsOnly bool `json:"-"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "blog api: %d", e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " [%s: %s]", k, strings.Join(e.Fields[k], "; "))
		}
	}
	return b.String()
}

// WriteError writes e to w.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.FieldsOnly {
		httpx.WriteJSON(w, e.StatusCode, e.Fields)
		return
	}
	httpx.WriteJSON(w, e.StatusCode, httpx.ErrorBody{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	})
}

// NewAPIError builds an APIError.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message}
}

// Common errors.
var (
	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    "Not found.",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       "authentication_failed",
		Message:    "No active account found with the given credentials",
	}

	ErrInvalidRefresh = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidToken,
		Message:    "Token is invalid or expired",
	}

	ErrNotAuthenticated = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNotAuthenticated,
		Message:    "Authentication credentials were not provided.",
	}

	ErrServer = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		Message:    "internal server error",
	}
)

// parseErrorResponse turns a non-2xx body into an *APIError. It accepts the
// envelope form and the bare field map written by /register/.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var env httpx.ErrorBody
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Error,
			Fields:     env.Fields,
		}
	}

	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       CodeValidation,
			Fields:     fields,
			FieldsOnly: true,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// ErrorResponse is the JSON error envelope written by the server.
type ErrorResponse = httpx.ErrorBody
