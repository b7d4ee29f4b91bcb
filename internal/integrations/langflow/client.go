package langflow

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

	"biocryptor/internal/metrics"
)

const (
	DefaultTimeout = 25 * time.Second
	chatIOType     = "chat"
)

// runRequest is the body of POST /api/v1/run/{flowId}.
type runRequest struct {
	InputValue string         `json:"input_value"`
	OutputType string         `json:"output_type"`
	InputType  string         `json:"input_type"`
	SessionID  string         `json:"session_id"`
	Tweaks     map[string]any `json:"tweaks"`
}

// HTTPStatusError captures non-2xx upstream responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("langflow: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// TransportError wraps failures where no HTTP response was received, such as
// connection errors and timeouts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("langflow: transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client runs a single Langflow flow in chat mode.
type Client struct {
	baseURL    string
	flowID     string
	httpClient *http.Client
	creds      CredentialSource
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds the whole upstream exchange. Non-positive values keep
// the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

func NewClient(baseURL, flowID string, creds CredentialSource, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("langflow: base url must not be empty")
	}
	flowID = strings.TrimSpace(flowID)
	if flowID == "" {
		return nil, errors.New("langflow: flow id must not be empty")
	}
	if creds == nil {
		return nil, errors.New("langflow: credential source must not be nil")
	}
	c := &Client{
		baseURL:    baseURL,
		flowID:     flowID,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func runURL(baseURL, flowID string) string {
	return strings.TrimRight(baseURL, "/") + "/api/v1/run/" + url.PathEscape(flowID)
}

// Run sends message to the flow under sessionID and returns the normalized
// reply. Reply.SessionID is the upstream session id when one is returned,
// otherwise sessionID.
func (c *Client) Run(ctx context.Context, sessionID, message string) (Reply, error) {
	creds, err := c.creds.Credentials(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("langflow: resolve credentials: %w", err)
	}

	body, err := json.Marshal(runRequest{
		InputValue: message,
		OutputType: chatIOType,
		InputType:  chatIOType,
		SessionID:  sessionID,
	})
	if err != nil {
		return Reply{}, fmt.Errorf("langflow: marshal request: %w", err)
	}

	target := runURL(c.baseURL, c.flowID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("langflow: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", creds.APIKey)
	req.Header.Set("Authorization", "Bearer "+creds.Token)

	raw, err := c.doJSONRequest(req, target)
	if err != nil {
		return Reply{}, err
	}

	reply, err := ExtractReply(raw)
	if err != nil {
		return Reply{}, err
	}
	if reply.SessionID == "" {
		reply.SessionID = sessionID
	}
	metrics.ReplyShape.WithLabelValues(reply.Shape).Inc()
	return reply, nil
}

func (c *Client) doJSONRequest(req *http.Request, target string) ([]byte, error) {
	start := time.Now()
	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		metrics.UpstreamDuration.WithLabelValues("transport_error").Observe(time.Since(start).Seconds())
		return nil, &TransportError{Err: doErr}
	}
	defer func() { _ = res.Body.Close() }()
	metrics.UpstreamDuration.WithLabelValues(strconv.Itoa(res.StatusCode)).Observe(time.Since(start).Seconds())

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        target,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response body: %w", err)}
	}
	return buf, nil
}
