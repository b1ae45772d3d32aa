package tracker

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// TrackingRecord is one outbound tracked email with its aggregate counters.
type TrackingRecord struct {
	ID             int64     `json:"id,omitempty"`
	TrackingID     string    `json:"tracking_id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject,omitempty"`
	OpenCount      int       `json:"open_count"`
	ClickCount     int       `json:"click_count"`
	LastOpenTime   Timestamp `json:"last_open_time"`
	LastClickTime  Timestamp `json:"last_click_time"`
	LastIP         string    `json:"last_ip,omitempty"`
	LastPort       Flexible  `json:"last_port,omitempty"`
	LastLocation   string    `json:"last_location,omitempty"`
	CreatedAt      Timestamp `json:"created_at"`
}

// OpenEvent is one observed open of a tracked email.
type OpenEvent struct {
	OpenTime Timestamp `json:"open_time"`
	IP       string    `json:"ip"`
	Port     Flexible  `json:"port"`
}

// TrackingPage is one page of the tracking list.
type TrackingPage struct {
	Records     []TrackingRecord
	CurrentPage int
	Pages       int
	Total       int
	PerPage     int
}

// TrackingDetails is a record with its open history, newest first.
type TrackingDetails struct {
	Tracking TrackingRecord
	Opens    []OpenEvent
}

// SMTPConfig holds outbound mail server settings.
// Password is write-only: the backend masks it on read and callers never redisplay it.
type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	UseTLS   bool   `json:"use_tls"`
}

// Default SMTP form values.
const (
	DefaultSMTPPort   = 587
	DefaultSMTPUseTLS = true
)

// DefaultSMTPConfig returns an empty config with default port and TLS.
func DefaultSMTPConfig() SMTPConfig {
	return SMTPConfig{Port: DefaultSMTPPort, UseTLS: DefaultSMTPUseTLS}
}

// SendRequest is the payload of a bulk send.
type SendRequest struct {
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Emails      []string `json:"emails"`
	ImageURL    string   `json:"image_url,omitempty"`
	RedirectURL string   `json:"redirect_url,omitempty"`
}

// SendResult is the outcome for one recipient of a bulk send.
type SendResult struct {
	Email      string `json:"email"`
	Success    bool   `json:"success"`
	TrackingID string `json:"tracking_id,omitempty"`
	ClickURL   string `json:"click_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// timestampLayouts lists the forms the backend has been seen to emit.
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a nullable backend time. Null, empty and unparseable values decode to the zero time.
type Timestamp struct {
	time.Time
}

// Ptr returns nil for the zero timestamp.
func (t Timestamp) Ptr() *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	t.Time = ParseTime(raw)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05-0700"))
}

// ParseTime parses a backend timestamp, returning the zero time when no layout fits.
func ParseTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Flexible decodes a JSON string or number into its string form. Null decodes to "".
type Flexible string

func (f *Flexible) UnmarshalJSON(data []byte) error {
	*f = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flexible(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flexible(n.String())
	return nil
}

func (f Flexible) String() string {
	return string(f)
}
