package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.clickup.com/api/v2"

// FieldIDs are the custom field IDs on the target list. Email is the upsert
// key; the others are optional extras on created tasks.
type FieldIDs struct {
	Email    string
	Phone    string
	Value    string
	WhatsApp string
	Settled  string
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIToken   string
	ListID     string
	Fields     FieldIDs
}

func (c Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, respBody any) (int, error) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.APIToken == "" {
		return 0, fmt.Errorf("missing api token")
	}

	var buf bytes.Buffer
	if reqBody != nil {
		if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
			return 0, err
		}
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.APIToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, readErr
	}

	// Surface the API error body for non-2xx, so callers can see rate limits,
	// bad field IDs, etc.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(b) > 0 {
			return resp.StatusCode, fmt.Errorf("clickup api error: status=%d body=%s", resp.StatusCode, string(b))
		}
		return resp.StatusCode, fmt.Errorf("clickup api error: status=%d", resp.StatusCode)
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return resp.StatusCode, fmt.Errorf("decode clickup response failed: %w body=%s", err, string(b))
		}
	}

	return resp.StatusCode, nil
}
