package main

import (
	"time"

	"github.com/dmitrymomot/mailtrack/pkg/cookie"
	"github.com/dmitrymomot/mailtrack/pkg/file"
	"github.com/dmitrymomot/mailtrack/pkg/httpserver"
	"github.com/dmitrymomot/mailtrack/pkg/redis"
	"github.com/dmitrymomot/mailtrack/pkg/session"
)

// Upload drivers.
const (
	DriverAPI   = "api"
	DriverLocal = "local"
	DriverS3    = "s3"
)

type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppName string `env:"APP_NAME" envDefault:"mailtrack-dashboard"`

	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:3000"`
	// BackendTimeout bounds each backend request. Zero leaves requests to the transport.
	BackendTimeout  time.Duration `env:"BACKEND_TIMEOUT"`
	RefreshInterval time.Duration `env:"TRACKING_REFRESH_INTERVAL" envDefault:"30s"`
	RedirectURL     string        `env:"DEFAULT_REDIRECT_URL" envDefault:"https://www.google.com"`

	UploadMaxSize   int64  `env:"UPLOAD_MAX_SIZE" envDefault:"5242880"`
	UploadDriver    string `env:"UPLOAD_DRIVER" envDefault:"api"`
	UploadLocalDir  string `env:"UPLOAD_LOCAL_DIR" envDefault:"./uploads"`
	UploadPublicURL string `env:"UPLOAD_PUBLIC_URL" envDefault:"http://localhost:8080/uploads/"`

	// TrustProxy makes client addresses come from forwarding headers.
	TrustProxy bool `env:"HTTP_TRUST_PROXY" envDefault:"false"`

	// WorkspaceTTL is how long page state outlives its last request.
	WorkspaceTTL time.Duration `env:"WORKSPACE_TTL" envDefault:"2h"`

	HTTP    httpserver.Config
	Cookie  cookie.Config
	Session session.Config
	Redis   redis.Config
	S3      file.S3Config
}
