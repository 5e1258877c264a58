package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/blog/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusNotFound, "not_found", "Not found.")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"Not found.","code":"not_found"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var dst struct {
			Name string `json:"name"`
		}
		return httpx.DecodeJSON(httptest.NewRecorder(), req, &dst)
	}

	require.NoError(t, decode(`{"name":"x"}`))
	require.Error(t, decode(``))
	require.Error(t, decode(`{"name":`))
	require.Error(t, decode(`{"name":"x"} {"name":"y"}`))
	require.Error(t, decode(`{"name":"`+strings.Repeat("a", httpx.MaxBodyBytes)+`"}`))
}

func TestCORSMiddleware(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), httpx.CORSMiddleware([]string{"http://localhost:3000"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/posts/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
