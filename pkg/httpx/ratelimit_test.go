package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/posts/", nil)
	req.RemoteAddr = addr
	return req
}

func asUser(req *http.Request, id string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), CtxKeyUserID, id))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote address", nil, "192.168.1.1"},
		{"first forwarded hop", map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"}, "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": " 203.0.113.2 "}, "203.0.113.2"},
		{"blank forwarded falls through", map[string]string{"X-Forwarded-For": " ,10.0.0.1", "X-Real-IP": "203.0.113.3"}, "203.0.113.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom("192.168.1.1:12345")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, ClientIP(req))
		})
	}

	req := requestFrom("pipe")
	require.Equal(t, "pipe", ClientIP(req))
}

func TestKeyFuncs(t *testing.T) {
	req := requestFrom("10.0.0.1:1")
	require.Equal(t, "ip:10.0.0.1", KeyByIP(req))
	require.Equal(t, "ip:10.0.0.1", KeyByUser(req))
	require.Equal(t, "user:42", KeyByUser(asUser(req, "42")))
}

func TestRateLimitValidate(t *testing.T) {
	for name, l := range map[string]RateLimit{
		"zero requests": {Requests: 0, Window: time.Minute, Burst: 1},
		"zero window":   {Requests: 1, Burst: 1},
		"zero burst":    {Requests: 1, Window: time.Minute},
	} {
		require.Error(t, l.Validate(), name)
	}

	d := DefaultRateLimits()
	for _, l := range []RateLimit{d.Strict, d.Moderate, d.Lenient, d.Public} {
		require.NoError(t, l.Validate())
	}
	require.Less(t, d.Strict.Requests, d.Moderate.Requests)
	require.Less(t, d.Moderate.Requests, d.Lenient.Requests)
	require.Less(t, d.Lenient.Requests, d.Public.Requests)
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks after burst with headers", func(t *testing.T) {
		h := RateLimitByIP(RateLimit{Requests: 2, Window: time.Minute, Burst: 2})(okHandler)

		for i := range 2 {
			require.Equal(t, http.StatusOK, serve(h, requestFrom("10.0.0.1:1")).Code, "request %d", i+1)
		}

		rec := serve(h, requestFrom("10.0.0.1:2"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Equal(t, "30", rec.Header().Get("Retry-After"))
		require.Contains(t, rec.Body.String(), `"code":"rate_limit_exceeded"`)

		// Another address has its own budget.
		require.Equal(t, http.StatusOK, serve(h, requestFrom("10.0.0.2:1")).Code)
	})

	t.Run("users on one address are separate", func(t *testing.T) {
		h := RateLimitByUser(RateLimit{Requests: 1, Window: time.Minute, Burst: 1})(okHandler)
		req := requestFrom("10.0.0.1:1")

		require.Equal(t, http.StatusOK, serve(h, asUser(req, "1")).Code)
		require.Equal(t, http.StatusTooManyRequests, serve(h, asUser(req, "1")).Code)
		require.Equal(t, http.StatusOK, serve(h, asUser(req, "2")).Code)
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		h := RateLimitMiddleware(RateLimit{Requests: 1, Window: time.Minute, Burst: 1},
			func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, serve(h, requestFrom("10.0.0.1:1")).Code)
		}
	})

	t.Run("instances do not share buckets", func(t *testing.T) {
		limit := RateLimit{Requests: 1, Window: time.Minute, Burst: 1}
		a := RateLimitByIP(limit)(okHandler)
		b := RateLimitByIP(limit)(okHandler)

		require.Equal(t, http.StatusOK, serve(a, requestFrom("10.0.0.1:1")).Code)
		require.Equal(t, http.StatusOK, serve(b, requestFrom("10.0.0.1:1")).Code)
	})
}

func TestBucketsEvictIdleKeys(t *testing.T) {
	b := newBuckets(RateLimit{Requests: 1, Window: time.Minute, Burst: 1})
	start := time.Now()

	b.get("ip:a", start)
	b.get("ip:b", start.Add(idleAfter-time.Second))
	require.Equal(t, 2, b.len())

	// The sweep drops a, which has been idle for idleAfter, and keeps b.
	b.get("ip:c", start.Add(idleAfter))
	require.Equal(t, 2, b.len())
	_, ok := b.byKey["ip:a"]
	require.False(t, ok)
}

func BenchmarkRateLimitManyKeys(b *testing.B) {
	h := RateLimitByIP(RateLimit{Requests: 1_000_000, Window: time.Minute, Burst: 1000})(okHandler)
	reqs := []*http.Request{requestFrom("10.0.0.1:1"), requestFrom("10.0.0.2:1"), requestFrom("10.0.0.3:1")}

	for i := 0; b.Loop(); i++ {
		serve(h, reqs[i%len(reqs)])
	}
}
