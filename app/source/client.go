package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lain-corp/lain-tv/app/database"
)

var _ Source = (*Client)(nil)

// Client fetches the configured endpoint and hands the body to a Decoder.
// The response body is capped at maxBytes.
type Client struct {
	httpClient *http.Client
	url        string
	maxBytes   int64
	userAgent  string
	decoder    Decoder
}

func NewClient(httpClient *http.Client, url string, maxBytes int64, userAgent string, decoder Decoder) *Client {
	return &Client{
		httpClient: httpClient,
		url:        url,
		maxBytes:   maxBytes,
		userAgent:  userAgent,
		decoder:    decoder,
	}
}

func (c *Client) Fetch(ctx context.Context) ([]database.Video, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	videos, err := c.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source payload: %w", err)
	}

	return videos, nil
}
