package mdm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError is returned for any non-2xx answer of the MDM API.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mdm api error: %d %s from %s body=%s",
		e.StatusCode, http.StatusText(e.StatusCode), e.URL, e.Body)
}

// Client talks to the external Master Data Management API. It keeps no
// per-request state, so one instance serves all requests.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Validate posts an arbitrary JSON payload to /validate.
func (c *Client) Validate(ctx context.Context, auth string, payload json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = json.RawMessage(`{}`)
	}
	return c.do(ctx, http.MethodPost, "/validate", auth, payload)
}

// CreateCR posts the draft to /cr?dryRun={draft.DryRun}.
func (c *Client) CreateCR(ctx context.Context, auth string, draft ChangeRequestDraft) (string, error) {
	if draft.Filter == nil {
		draft.Filter = map[string]any{}
	}
	if draft.ProposedChanges == nil {
		draft.ProposedChanges = map[string]any{}
	}
	b, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("mdm: marshal draft: %w", err)
	}
	path := "/cr?dryRun=" + strconv.FormatBool(draft.DryRun)
	return c.do(ctx, http.MethodPost, path, auth, b)
}

// Status fetches a change request by id.
func (c *Client) Status(ctx context.Context, auth string, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("mdm: change request id is empty")
	}
	return c.do(ctx, http.MethodGet, "/cr/"+url.PathEscape(id), auth, nil)
}

func (c *Client) do(ctx context.Context, method, path, auth string, body []byte) (string, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return "", fmt.Errorf("mdm: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mdm: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       string(respBody),
		}
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("mdm: read response body: %w", err)
	}
	return string(respBody), nil
}

// ParseCRID returns the "id" field of a create-CR response, or "" when the
// body is not a JSON object with a string or numeric id. Numeric ids keep
// their exact digits.
func ParseCRID(body string) string {
	var resp struct {
		ID any `json:"id"`
	}
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return ""
	}
	switch v := resp.ID.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}
