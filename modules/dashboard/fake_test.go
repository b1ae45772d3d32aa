package dashboard_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/modules/dashboard"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// fakeBackend records what the dashboard asks of the tracker.
type fakeBackend struct {
	mu      sync.Mutex
	config  *tracker.SMTPConfig
	loadErr error
	saved   []tracker.SMTPConfig
	saveErr error
	tests   []string
	testErr error
	sent    []tracker.SendRequest
	results []tracker.SendResult
	sendErr error
}

func (f *fakeBackend) SMTPConfig(context.Context) (*tracker.SMTPConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config, f.loadErr
}

func (f *fakeBackend) SaveSMTPConfig(_ context.Context, cfg tracker.SMTPConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, cfg)
	return "saved", f.saveErr
}

func (f *fakeBackend) TestSMTP(_ context.Context, address string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tests = append(f.tests, address)
	return "sent", f.testErr
}

func (f *fakeBackend) SendEmails(_ context.Context, req tracker.SendRequest) ([]tracker.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.results, nil
}

func (f *fakeBackend) sends() []tracker.SendRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tracker.SendRequest(nil), f.sent...)
}

func (f *fakeBackend) saves() []tracker.SMTPConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tracker.SMTPConfig(nil), f.saved...)
}

func (f *fakeBackend) testCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tests...)
}

// fakeUploader returns url or err and remembers the uploads.
type fakeUploader struct {
	mu      sync.Mutex
	url     string
	err     error
	uploads []string
}

func (u *fakeUploader) Upload(_ context.Context, filename, contentType string, _ []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, filename+" "+contentType)
	return u.url, u.err
}

func (u *fakeUploader) calls() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.uploads...)
}

func validForm() dashboard.SMTPForm {
	return dashboard.SMTPForm{Host: "smtp.example.com", Port: "587", Username: "user", Password: "secret", UseTLS: true}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
