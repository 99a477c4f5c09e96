package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tyulyukov/veracity-go/apperrors"
)

// ProgressFunc receives a monotonically non-decreasing upload percentage.
// 100 is reported only after the server accepted the upload.
type ProgressFunc func(percent int)

// UploadRequest describes one multipart upload to /storage/upload
type UploadRequest struct {
	// File is the binary content
	File io.Reader
	// FileName is the original file name sent in the file part
	FileName string
	// Entity is the owning entity type ("users", "events", "posts")
	Entity string
	// EntityID is the owning entity's ID
	EntityID string
	// Field is the destination field ("avatar", "event_image", "post_image")
	Field string
}

// UploadResponse carries the server-assigned storage path
type UploadResponse struct {
	Path string `json:"path"`
}

// Upload performs a single multipart upload and reports incremental
// progress while the body is written. There is no retry; the caller
// decides whether to re-invoke. On any non-2xx response or transport
// failure the returned error carries a display message and no 100 is
// reported.
func (c *Client) Upload(ctx context.Context, upload UploadRequest, onProgress ProgressFunc) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, upload.File); err != nil {
		return "", fmt.Errorf("failed to read upload content: %w", err)
	}

	if err := writer.WriteField("entity", upload.Entity); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.WriteField("entityId", upload.EntityID); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.WriteField("field", upload.Field); err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	// The body percentage is capped at 99; 100 is the acceptance signal.
	progress := &progressReader{
		reader: &buf,
		total:  int64(buf.Len()),
		report: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/storage/upload", progress)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = progress.total

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, respBody)
		if apiErr.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return "", apiErr
	}

	var result UploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}

	progress.complete()
	return result.Path, nil
}

// progressReader reports upload progress as the request body is consumed.
// Reported percentages never decrease and never reach 100 from reads
// alone.
type progressReader struct {
	reader io.Reader
	total  int64
	read   int64
	last   int
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	p.read += int64(n)

	if p.report != nil && p.total > 0 {
		percent := int(p.read * 100 / p.total)
		if percent > 99 {
			percent = 99
		}
		if percent > p.last {
			p.last = percent
			p.report(percent)
		}
	}

	return n, err
}

// complete emits the final 100 after the server accepted the upload
func (p *progressReader) complete() {
	if p.report != nil && p.last < 100 {
		p.last = 100
		p.report(100)
	}
}
