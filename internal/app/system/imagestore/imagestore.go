// Package imagestore uploads profile images to imgur and returns the
// hosted URL. Instructor accounts require a profile image, so their
// creation fails when the upload does.
package imagestore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	uploadURL      = "https://api.imgur.com/3/image"
	maxResponseLen = 1 << 20
)

var ErrNotConfigured = errors.New("image store not configured")

// Client talks to the imgur anonymous-upload API.
type Client struct {
	clientID string
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

func New(clientID string, log *zap.Logger) *Client {
	return &Client{
		clientID: clientID,
		endpoint: uploadURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Enabled reports whether an imgur client ID is configured.
func (c *Client) Enabled() bool {
	return c.clientID != ""
}

type uploadResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends the raw image bytes (base64-encoded, as the API expects)
// and returns the hosted image URL.
func (c *Client) Upload(ctx context.Context, image []byte) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(image))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.clientID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		return "", fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("image upload rejected",
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("upload image: status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.Data.Link == "" {
		return "", errors.New("upload response missing image link")
	}
	return parsed.Data.Link, nil
}
