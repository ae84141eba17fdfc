package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadURLFormat = "https://api.cloudinary.com/v1_1/%s/image/upload"

// Client talks to the image hosting collaborator: it takes a binary file
// and hands back a hosted URL. The catalog consumes that URL as an
// image/images candidate and performs no further validation of it.
type Client struct {
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
}

func NewClient(cfg config.Uploader) *Client {
	return &Client{
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Enabled reports whether the collaborator is configured at all.
func (c *Client) Enabled() bool {
	return c.cloudName != "" && c.uploadPreset != ""
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as an unsigned multipart upload and returns the
// hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file into form: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("write upload preset field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	uploadURL := fmt.Sprintf(uploadURLFormat, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.New().String())

	logger.Debug("uploading image", zap.String("filename", filename))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := uploaded.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		}
		return "", fmt.Errorf("upload rejected: %s", msg)
	}

	url := uploaded.SecureURL
	if url == "" {
		url = uploaded.URL
	}
	if url == "" {
		return "", fmt.Errorf("no url returned by image host")
	}

	return url, nil
}
