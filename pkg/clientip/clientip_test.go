package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailtrack/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "192.0.2.1:5000", nil, false, "192.0.2.1"},
		{"remote without port", "192.0.2.1", nil, false, "192.0.2.1"},
		{"ipv6 remote", "[2001:db8::1]:443", nil, false, "2001:db8::1"},
		{"headers ignored without trust", "192.0.2.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.9"}, false, "192.0.2.1"},
		{"forwarded first valid", "10.0.0.1:5000", map[string]string{"X-Forwarded-For": "garbage, 203.0.113.9, 10.0.0.2"}, true, "203.0.113.9"},
		{"cloudflare wins", "10.0.0.1:5000", map[string]string{"CF-Connecting-IP": "198.51.100.7", "X-Forwarded-For": "203.0.113.9"}, true, "198.51.100.7"},
		{"real ip", "10.0.0.1:5000", map[string]string{"X-Real-IP": "198.51.100.8"}, true, "198.51.100.8"},
		{"invalid headers fall back", "10.0.0.1:5000", map[string]string{"X-Real-IP": "nope"}, true, "10.0.0.1"},
		{"unparseable remote", "pipe", nil, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r, tt.trustProxy))
		})
	}
}

func TestMiddlewareAndExtractor(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(false)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.44:1234"
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "192.0.2.44", got)

	extract := clientip.LoggerExtractor()
	attr, ok := extract(clientip.WithContext(context.Background(), got))
	assert.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)

	_, ok = extract(context.Background())
	assert.False(t, ok)
}
