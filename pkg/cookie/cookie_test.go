package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/pkg/cookie"
)

const (
	secretA = "0123456789abcdef0123456789abcdef"
	secretB = "fedcba9876543210fedcba9876543210"
)

// replay copies Set-Cookie headers from rec into a new request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSignedRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA}, cookie.WithSecure(true))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "sid", "token-value", cookie.WithMaxAge(60))

	c := rec.Result().Cookies()[0]
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 60, c.MaxAge)
	assert.NotContains(t, c.Value, "token-value")

	got, err := m.GetSigned(replay(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestSignedTampered(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "sid", "token")
	value := rec.Result().Cookies()[0].Value
	encoded, sig, _ := strings.Cut(value, "|")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: encoded + "x|" + sig})
	_, err = m.GetSigned(r, "sid")
	assert.Error(t, err)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "no-separator"})
	_, err = m.GetSigned(r, "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)

	_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	old.SetSigned(rec, "sid", "token")

	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)
	got, err := rotated.GetSigned(replay(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token", got)

	dropped, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = dropped.GetSigned(replay(rec), "sid")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Delete(rec, "sid")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, "sid", c.Name)
	assert.Equal(t, -1, c.MaxAge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.Config{Secrets: " " + secretA + " , ," + secretB, Secure: true, SameSite: http.SameSiteStrictMode}
	assert.Equal(t, []string{secretA, secretB}, cfg.SecretList())

	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "k", "v")
	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
