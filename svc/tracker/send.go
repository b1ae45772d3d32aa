package tracker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

type sendResponse struct {
	Results []SendResult `json:"results"`
}

// SendEmails dispatches one tracked email per recipient and returns a result per recipient.
func (c *Client) SendEmails(ctx context.Context, req SendRequest) ([]SendResult, error) {
	cl, err := jsonCall("send emails", http.MethodPost, "/api/send-email", req)
	if err != nil {
		return nil, err
	}
	var resp sendResponse
	if _, err := c.do(ctx, cl, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage stores an image on the backend and returns its public URL.
// The file is sent as the multipart field "image".
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if r == nil {
		return "", &RequestError{Op: "upload image", Message: "No file selected", Err: ErrMissingFile}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", &RequestError{Op: "upload image", Message: fallbackMessage, Err: fmt.Errorf("create part: %w", err)}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &RequestError{Op: "upload image", Message: fallbackMessage, Err: fmt.Errorf("copy file: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return "", &RequestError{Op: "upload image", Message: fallbackMessage, Err: fmt.Errorf("close multipart: %w", err)}
	}

	var resp uploadResponse
	cl := call{
		op:          "upload image",
		method:      http.MethodPost,
		path:        "/api/upload-image",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}
	if _, err := c.do(ctx, cl, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.URL) == "" {
		return "", &RequestError{Op: "upload image", Message: "Upload response did not include a URL", Err: ErrInvalidBody}
	}
	return resp.URL, nil
}
