package faceclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrNoFaceDetected is returned when the face service finds zero faces in the
// submitted image.
var ErrNoFaceDetected = errors.New("no face detected")

// Client calls the face embedding microservice. The service detects faces in
// an image and returns a unit-normalized embedding for the first one.
// The client is shared process-wide and safe for concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Skip    bool
}

// New creates a client. The timeout bounds the whole extraction round trip;
// face processing is the expensive step of every request.
func New(baseURL string, skip bool, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		Skip:    skip,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// skipEmbedding is the canned vector returned in Skip mode. It must be
// unit-length: downstream matching dots it against itself, so anything else
// would make every dev-mode comparison fail the threshold.
var skipEmbedding = []float32{0.6, 0.8, 0}

// Extract uploads raw image bytes and returns the embedding of the first
// detected face. Zero faces yields ErrNoFaceDetected.
func (c *Client) Extract(ctx context.Context, image []byte) ([]float32, error) {
	if c.Skip {
		return skipEmbedding, nil
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("image bytes required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/embed", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("face service error %s: %s", resp.Status, string(body))
	}

	var out struct {
		Embedding     []float32 `json:"embedding"`
		FacesDetected int       `json:"faces_detected"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.FacesDetected == 0 || len(out.Embedding) == 0 {
		return nil, ErrNoFaceDetected
	}
	return out.Embedding, nil
}

// Health checks if the face service is available.
func (c *Client) Health(ctx context.Context) error {
	if c.Skip {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("face service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("face service unhealthy: %s", resp.Status)
	}

	return nil
}
