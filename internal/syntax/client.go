package syntax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a dependency-parse service (for example a spaCy HTTP
// wrapper) that answers POST /parse with a token list
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Tokens []Token `json:"tokens"`
}

type parseError struct {
	Error string `json:"error"`
}

// NewClient creates a parser client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Parse returns the dependency tree for sentence
func (c *Client) Parse(ctx context.Context, sentence string) (*Tree, error) {
	body, err := json.Marshal(parseRequest{Text: sentence})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/parse", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr parseError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("parser error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("parser error (%d): %s", resp.StatusCode, string(respBody))
	}

	var parsed parseResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Tokens) == 0 {
		return nil, fmt.Errorf("parser returned no tokens")
	}

	return NewTree(sentence, parsed.Tokens)
}
