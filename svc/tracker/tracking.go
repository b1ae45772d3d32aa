package tracker

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ClearConfirmation is the phrase the backend requires before wiping tracking data.
const ClearConfirmation = "DELETE ALL"

type listResponse struct {
	Data        []TrackingRecord `json:"data"`
	CurrentPage int              `json:"current_page"`
	Pages       int              `json:"pages"`
	Total       int              `json:"total"`
	PerPage     int              `json:"per_page"`
}

// ListTracking fetches one page of tracking records, optionally filtered by recipient.
func (c *Client) ListTracking(ctx context.Context, page int, search string) (*TrackingPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if search = strings.TrimSpace(search); search != "" {
		q.Set("search", search)
	}

	var resp listResponse
	if _, err := c.do(ctx, call{op: "list tracking", method: http.MethodGet, path: "/api/tracking", query: q}, &resp); err != nil {
		return nil, err
	}

	current := resp.CurrentPage
	if current < 1 {
		current = page
	}
	return &TrackingPage{
		Records:     resp.Data,
		CurrentPage: current,
		Pages:       resp.Pages,
		Total:       resp.Total,
		PerPage:     resp.PerPage,
	}, nil
}

type detailsResponse struct {
	Tracking TrackingRecord `json:"tracking"`
	Opens    []OpenEvent    `json:"opens"`
}

// TrackingDetails fetches a record together with its open history.
func (c *Client) TrackingDetails(ctx context.Context, trackingID string) (*TrackingDetails, error) {
	if strings.TrimSpace(trackingID) == "" {
		return nil, &RequestError{Op: "tracking details", Message: "Tracking ID is required", Err: ErrMissingRecord}
	}

	var resp detailsResponse
	path := "/api/tracking/" + url.PathEscape(trackingID) + "/details"
	if _, err := c.do(ctx, call{op: "tracking details", method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	return &TrackingDetails{Tracking: resp.Tracking, Opens: resp.Opens}, nil
}

// ClearDatabase removes every tracking record. The backend rejects any
// confirmation other than ClearConfirmation. It returns the backend message.
func (c *Client) ClearDatabase(ctx context.Context, confirmation string) (string, error) {
	cl, err := jsonCall("clear database", http.MethodPost, "/api/admin/clear-database", map[string]string{
		"confirmation": confirmation,
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
