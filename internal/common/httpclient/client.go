// internal/common/httpclient/client.go
package httpclient

import (
	"bytes"
	"context"
	"net/http"
	"time"
)

// Client is a timeout-bounded HTTP client for service-to-service calls.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostJSON issues a POST with a JSON body, honoring ctx cancellation.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
