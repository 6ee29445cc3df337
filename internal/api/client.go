package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default AskSage API endpoints.
const (
	DefaultUserBaseURL   = "https://api.asksage.ai/user"
	DefaultServerBaseURL = "https://api.asksage.ai/server"
)

// Client is an HTTP client for the AskSage platform API. Requests are
// authenticated with an access token obtained once per client from the
// user endpoint using the account email and API key.
type Client struct {
	email         string
	apiKey        string
	userBaseURL   string
	serverBaseURL string
	http          *http.Client
	token         string
}

var _ Sage = (*Client)(nil)

// NewClient creates a new AskSage API client.
func NewClient(email, apiKey, userBaseURL, serverBaseURL string, timeout time.Duration) *Client {
	if userBaseURL == "" {
		userBaseURL = DefaultUserBaseURL
	}
	if serverBaseURL == "" {
		serverBaseURL = DefaultServerBaseURL
	}
	return &Client{
		email:         email,
		apiKey:        apiKey,
		userBaseURL:   strings.TrimRight(userBaseURL, "/"),
		serverBaseURL: strings.TrimRight(serverBaseURL, "/"),
		http:          &http.Client{Timeout: timeout},
	}
}

// accessToken exchanges the email/API key pair for an access token. The
// token is cached on the client for subsequent calls.
func (c *Client) accessToken() (string, error) {
	if c.token != "" {
		return c.token, nil
	}

	raw, err := c.post(c.userBaseURL, "get-token-with-api-key", "", map[string]any{
		"email":   c.email,
		"api_key": c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("unexpected token response: %v", raw)
	}
	// The token lives under response.access_token in current API versions,
	// and at the top level in older ones.
	if inner, ok := m["response"].(map[string]any); ok {
		m = inner
	}
	token, _ := m["access_token"].(string)
	if token == "" {
		return "", fmt.Errorf("no access token in response")
	}

	c.token = token
	return token, nil
}

// call POSTs a JSON body to a server endpoint and returns the decoded
// response value.
func (c *Client) call(endpoint string, body map[string]any) (any, error) {
	token, err := c.accessToken()
	if err != nil {
		return nil, err
	}
	return c.post(c.serverBaseURL, endpoint, token, body)
}

func (c *Client) post(base, endpoint, token string, body map[string]any) (any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, base+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-access-tokens", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// Error statuses are reported in the body using the status convention,
	// so the body is decoded regardless of the HTTP status code and handed
	// to the caller's normalization.
	var value any
	if err := json.Unmarshal(respBody, &value); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		return strings.TrimSpace(string(respBody)), nil
	}
	return value, nil
}

// GetDatasets lists the caller's dataset identifiers.
func (c *Client) GetDatasets() (any, error) {
	return c.call("get-datasets", map[string]any{})
}

// AddDataset creates a new dataset with the given short name.
func (c *Client) AddDataset(name string) (any, error) {
	return c.call("add-dataset", map[string]any{"dataset": name})
}

// DeleteDataset deletes a dataset by full identifier.
func (c *Client) DeleteDataset(name string) (any, error) {
	return c.call("delete-dataset", map[string]any{"dataset": name})
}

// AssignDataset makes a dataset the active one for subsequent queries.
func (c *Client) AssignDataset(name string) (any, error) {
	return c.call("assign-dataset", map[string]any{"dataset": name})
}

// TrainWithFile uploads a file's content into a dataset.
func (c *Client) TrainWithFile(path string, opts TrainOptions) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	body := map[string]any{
		"content":   string(content),
		"file_name": filepath.Base(path),
		"dataset":   opts.Dataset,
		"summarize": opts.Summarize,
	}
	if opts.Context != "" {
		body["context"] = opts.Context
	}
	return c.call("train-with-file", body)
}

// Query runs a plain text query.
func (c *Client) Query(message string, opts QueryOptions) (any, error) {
	return c.call("query", queryBody(message, opts))
}

// QueryWithFile runs a query with a file's content attached.
func (c *Client) QueryWithFile(message, path string, opts QueryOptions) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	body := queryBody(message, opts)
	body["file"] = string(content)
	body["file_name"] = filepath.Base(path)
	return c.call("query-with-file", body)
}

// QueryPlugin runs a query through a named plugin.
func (c *Client) QueryPlugin(message, plugin string, opts QueryOptions) (any, error) {
	body := queryBody(message, opts)
	body["plugin_name"] = plugin
	return c.call("query-plugin", body)
}

// CountMonthlyTokens returns the tokens consumed by queries this month.
func (c *Client) CountMonthlyTokens() (any, error) {
	return c.call("count-monthly-tokens", map[string]any{})
}

// CountMonthlyTeachTokens returns the tokens consumed by training this month.
func (c *Client) CountMonthlyTeachTokens() (any, error) {
	return c.call("count-monthly-teach-tokens", map[string]any{})
}

// GetModels lists the models available to the account.
func (c *Client) GetModels() (any, error) {
	return c.call("get-models", map[string]any{})
}

func queryBody(message string, opts QueryOptions) map[string]any {
	body := map[string]any{"message": message}
	if opts.Model != "" {
		body["model"] = opts.Model
	}
	if opts.Persona != "" {
		body["persona"] = opts.Persona
	}
	return body
}
