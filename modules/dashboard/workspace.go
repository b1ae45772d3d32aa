package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/mailtrack/pkg/file"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/validator"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

// DefaultRedirectURL is where tracked links land when the form leaves it empty.
const DefaultRedirectURL = "https://www.google.com"

// DefaultMaxUploadSize is the image size limit.
const DefaultMaxUploadSize int64 = 5 << 20

// Backend is the part of the tracker client the dashboard uses.
type Backend interface {
	SMTPConfig(ctx context.Context) (*tracker.SMTPConfig, error)
	SaveSMTPConfig(ctx context.Context, cfg tracker.SMTPConfig) (string, error)
	TestSMTP(ctx context.Context, address string) (string, error)
	SendEmails(ctx context.Context, req tracker.SendRequest) ([]tracker.SendResult, error)
}

// SMTPForm is the SMTP settings form as submitted. Port stays a string so
// that a non-numeric value becomes a validation error rather than a bind error.
type SMTPForm struct {
	Host     string `json:"host" form:"host"`
	Port     string `json:"port" form:"port"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	UseTLS   bool   `json:"use_tls" form:"use_tls"`
}

// DefaultSMTPForm is the form after a clear.
func DefaultSMTPForm() SMTPForm {
	d := tracker.DefaultSMTPConfig()
	return SMTPForm{Port: strconv.Itoa(d.Port), UseTLS: d.UseTLS}
}

// FormFromConfig fills the form from saved settings. The password is never echoed.
func FormFromConfig(cfg *tracker.SMTPConfig) SMTPForm {
	if cfg == nil {
		return DefaultSMTPForm()
	}
	return SMTPForm{
		Host:     cfg.Host,
		Port:     strconv.Itoa(cfg.Port),
		Username: cfg.Username,
		UseTLS:   cfg.UseTLS,
	}
}

// Config validates the form and converts it into backend settings.
func (f SMTPForm) Config() (tracker.SMTPConfig, error) {
	host := strings.TrimSpace(f.Host)
	username := strings.TrimSpace(f.Username)
	port, convErr := strconv.Atoi(strings.TrimSpace(f.Port))
	if convErr != nil {
		port = 0
	}

	err := validator.Apply(
		validator.RequiredString("host", host).WithMessage("Host is required"),
		validator.NumBetween("port", port, 1, 65535).WithMessage("Port must be between 1 and 65535"),
		validator.RequiredString("username", username).WithMessage("Username is required"),
		validator.RequiredString("password", f.Password).WithMessage("Password is required"),
	)
	if err != nil {
		return tracker.SMTPConfig{}, err
	}
	return tracker.SMTPConfig{
		Host:     host,
		Port:     port,
		Username: username,
		Password: f.Password,
		UseTLS:   f.UseTLS,
	}, nil
}

// SendForm is the bulk send form.
type SendForm struct {
	Subject     string `json:"subject" form:"subject"`
	Body        string `json:"body" form:"body"`
	Recipients  string `json:"recipients" form:"recipients"`
	RedirectURL string `json:"redirect_url" form:"redirect_url"`
}

// Workspace holds what one dashboard page load knows: the SMTP settings it
// saved or loaded and the URL of the image it uploaded.
type Workspace struct {
	api         Backend
	log         *slog.Logger
	redirectURL string

	mu       sync.Mutex
	smtp     *tracker.SMTPConfig
	imageURL string
}

type WorkspaceOption func(*Workspace)

func WithWorkspaceLogger(l *slog.Logger) WorkspaceOption {
	return func(w *Workspace) {
		if l != nil {
			w.log = l
		}
	}
}

// WithDefaultRedirect sets the redirect used when the send form leaves it empty.
func WithDefaultRedirect(u string) WorkspaceOption {
	return func(w *Workspace) {
		if u != "" {
			w.redirectURL = u
		}
	}
}

func NewWorkspace(api Backend, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		api:         api,
		log:         slog.Default(),
		redirectURL: DefaultRedirectURL,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SMTP returns a copy of the current settings, or nil.
func (w *Workspace) SMTP() *tracker.SMTPConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.smtp == nil {
		return nil
	}
	cfg := *w.smtp
	return &cfg
}

func (w *Workspace) ImageURL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.imageURL
}

func (w *Workspace) SetImageURL(u string) {
	w.mu.Lock()
	w.imageURL = u
	w.mu.Unlock()
}

// LoadSMTP fetches saved settings. A failure is logged and treated as
// "nothing saved" so the form still renders.
func (w *Workspace) LoadSMTP(ctx context.Context) *tracker.SMTPConfig {
	cfg, err := w.api.SMTPConfig(ctx)
	if err != nil {
		w.log.WarnContext(ctx, "failed to load smtp config", logger.Error(err), logger.Component("dashboard"))
		return nil
	}
	if cfg == nil {
		return nil
	}

	w.mu.Lock()
	stored := *cfg
	w.smtp = &stored
	w.mu.Unlock()
	return cfg
}

// SaveSMTP validates and stores the settings. The backend's message is returned.
func (w *Workspace) SaveSMTP(ctx context.Context, form SMTPForm) (string, error) {
	cfg, err := form.Config()
	if err != nil {
		return "", err
	}
	msg, err := w.api.SaveSMTPConfig(ctx, cfg)
	if err != nil {
		return "", err
	}

	w.mu.Lock()
	w.smtp = &cfg
	w.mu.Unlock()
	return msg, nil
}

// ClearSMTP forgets the settings once the user confirmed. Nothing is sent to the backend.
func (w *Workspace) ClearSMTP(confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	w.mu.Lock()
	w.smtp = nil
	w.mu.Unlock()
	return nil
}

// SendTest sends a test message through the saved settings.
func (w *Workspace) SendTest(ctx context.Context, address string) (string, error) {
	if w.SMTP() == nil {
		return "", ErrSMTPNotConfigured
	}
	address = strings.TrimSpace(address)
	err := validator.Apply(
		validator.RequiredString("test_email", address).WithMessage("Please enter a test email address"),
	)
	if err != nil {
		return "", err
	}
	return w.api.TestSMTP(ctx, address)
}

// Submit sends the bulk request. On success the uploaded image is forgotten.
func (w *Workspace) Submit(ctx context.Context, form SendForm) ([]tracker.SendResult, error) {
	if w.SMTP() == nil {
		return nil, ErrSMTPNotConfigured
	}

	emails := ParseRecipients(form.Recipients)
	redirect := strings.TrimSpace(form.RedirectURL)
	err := validator.Apply(
		validator.RequiredSlice("recipients", emails).WithMessage("Please enter at least one valid email address"),
		validator.Optional(redirect, validator.ValidURLWithScheme("redirect_url", redirect, []string{"http", "https"})).
			WithMessage("Please enter a valid redirect URL (http or https)"),
	)
	if err != nil {
		return nil, err
	}

	if redirect == "" {
		redirect = w.redirectURL
	}

	req := tracker.SendRequest{
		Subject:     form.Subject,
		Body:        form.Body,
		Emails:      emails,
		ImageURL:    w.ImageURL(),
		RedirectURL: redirect,
	}
	results, err := w.api.SendEmails(ctx, req)
	if err != nil {
		return nil, err
	}

	w.log.InfoContext(ctx, "bulk send processed",
		logger.Component("dashboard"),
		logger.Recipients(len(emails)),
		slog.Int("results", len(results)),
	)
	w.SetImageURL("")
	return results, nil
}

// Upload is one image submitted for attachment.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReadUpload rejects oversized and non-image files before anything is uploaded.
func ReadUpload(fh *multipart.FileHeader, maxBytes int64) (Upload, error) {
	if fh == nil {
		return Upload{}, ErrNoFile
	}
	data, err := file.ReadAll(fh, maxBytes)
	if err != nil {
		return Upload{}, err
	}
	mimeType := file.DetectMIMEType(data)
	if !file.IsImageMIME(mimeType) {
		return Upload{}, ErrNotImage
	}
	return Upload{Filename: file.SanitizeFilename(fh.Filename), ContentType: mimeType, Data: data}, nil
}

// UploadImage stores the image and remembers its URL. On failure the
// previous URL is dropped as well.
func (w *Workspace) UploadImage(ctx context.Context, up ImageUploader, u Upload) (string, error) {
	url, err := up.Upload(ctx, u.Filename, u.ContentType, u.Data)
	if err == nil && strings.TrimSpace(url) == "" {
		err = errors.New("upload returned an empty url")
	}
	if err != nil {
		w.SetImageURL("")
		return "", err
	}
	w.SetImageURL(url)
	return url, nil
}
