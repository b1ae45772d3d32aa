package tracker

import (
	"context"
	"errors"
	"net/http"
)

type smtpConfigResponse struct {
	Config *SMTPConfig `json:"config"`
}

// SMTPConfig returns the stored SMTP settings with the password cleared.
// It returns (nil, nil) when the backend has no configuration.
func (c *Client) SMTPConfig(ctx context.Context) (*SMTPConfig, error) {
	var resp smtpConfigResponse
	_, err := c.do(ctx, call{op: "get smtp config", method: http.MethodGet, path: "/api/smtp/config"}, &resp)
	if err != nil {
		var reqErr *RequestError
		// A success:false answer with a 2xx status means nothing is configured yet.
		if errors.As(err, &reqErr) && errors.Is(err, ErrUnsuccessful) && reqErr.Status >= 200 && reqErr.Status < 300 {
			return nil, nil
		}
		return nil, err
	}
	if resp.Config == nil {
		return nil, nil
	}

	cfg := *resp.Config
	cfg.Password = ""
	return &cfg, nil
}

// SaveSMTPConfig stores SMTP settings and returns the backend message.
func (c *Client) SaveSMTPConfig(ctx context.Context, cfg SMTPConfig) (string, error) {
	cl, err := jsonCall("save smtp config", http.MethodPost, "/api/smtp/config", cfg)
	if err != nil {
		return "", err
	}
	env, err := c.do(ctx, cl, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// TestSMTP asks the backend to send a test email to address.
func (c *Client) TestSMTP(ctx context.Context, address string) (string, error) {
	cl, err := jsonCall("test smtp", http.MethodPost, "/api/smtp/test", map[string]string{
		"test_email": address,
	})
	if err != nil {
		return "", err
	}
	env, err := c.do(ctx, cl, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
