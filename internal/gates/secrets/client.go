package secrets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client talks to a remote secrets-scanning API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{httpClient: http.DefaultClient, baseURL: baseURL, apiKey: apiKey}
}

// RemoteFinding is one secret reported by the scanning API.
type RemoteFinding struct {
	Token string `json:"token"`
	Rule  string `json:"rule"`
}

type scanRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Scan submits one file's content and returns the reported secrets.
func (c *Client) Scan(ctx context.Context, path string, content []byte) ([]RemoteFinding, error) {
	body, err := json.Marshal(scanRequest{Path: path, Content: string(content)})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"v1/scan", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan API status %d", resp.StatusCode)
	}
	var out []RemoteFinding
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode scan response: %w", err)
	}
	return out, nil
}
