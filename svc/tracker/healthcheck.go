package tracker

import (
	"context"
	"fmt"
	"net/http"
)

// Healthcheck returns a readiness probe that succeeds while the backend answers below 500.
func (c *Client) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+"/", nil)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
		_ = resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: backend status %d", ErrUnsuccessful, resp.StatusCode)
		}
		return nil
	}
}
