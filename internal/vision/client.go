package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://vision.googleapis.com/v1"
	defaultMaxLabels   = 10
	defaultMaxFaces    = 5
	defaultHTTPTimeout = 30 * time.Second

	featureText  = "TEXT_DETECTION"
	featureLabel = "LABEL_DETECTION"
	featureFace  = "FACE_DETECTION"
)

// ErrTransport marks a network or service failure while talking to the
// analysis service. The coordinator absorbs it per attachment and
// routes the item to manual review.
var ErrTransport = errors.New("vision transport error")

// Client calls the image-analysis annotate endpoint over REST.
type Client struct {
	apiKey     string
	baseURL    string
	maxLabels  int
	maxFaces   int
	httpClient *http.Client
	retry      retryPolicy
	breaker    *breaker
}

// Option customizes the vision client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithLimits overrides the per-call annotation result limits.
func WithLimits(maxLabels, maxFaces int) Option {
	return func(c *Client) {
		if maxLabels > 0 {
			c.maxLabels = maxLabels
		}
		if maxFaces > 0 {
			c.maxFaces = maxFaces
		}
	}
}

// WithRetry overrides the transport retry policy.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(c *Client) {
		c.retry = retryPolicy{maxAttempts: maxAttempts, backoff: backoff}
	}
}

// NewClient constructs an analysis service client. The key is the
// opaque credential handle; its lifecycle is owned by the caller.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		maxLabels:  defaultMaxLabels,
		maxFaces:   defaultMaxFaces,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		retry:      defaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	client.breaker = newBreaker("vision-annotate")
	return client
}

// ExtractFile reads the image at path and runs Extract on its contents.
func (c *Client) ExtractFile(ctx context.Context, path string) (Signals, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Signals{}, 0, fmt.Errorf("read image %s: %w", path, err)
	}
	return c.Extract(ctx, data)
}

// Extract runs the two-tier annotate policy over the image bytes.
// Tier 1 requests text and labels; tier 2 requests face detection and
// runs only when the trimmed tier-1 text is shorter than the sparse
// threshold. The returned count is the number of calls that executed.
func (c *Client) Extract(ctx context.Context, imageBytes []byte) (Signals, int, error) {
	calls := 0

	tier1, err := c.annotate(ctx, imageBytes, []feature{
		{Type: featureText, MaxResults: 1},
		{Type: featureLabel, MaxResults: c.maxLabels},
	})
	if err != nil {
		return Signals{}, calls, err
	}
	calls++

	signals := signalsFromAnnotation(tier1)

	if len(strings.TrimSpace(signals.Text)) < sparseTextThreshold {
		tier2, err := c.annotate(ctx, imageBytes, []feature{
			{Type: featureFace, MaxResults: c.maxFaces},
		})
		if err != nil {
			return signals, calls, err
		}
		calls++
		signals.Faces = facesFromAnnotation(tier2)
	}

	return signals, calls, nil
}

func (c *Client) annotate(ctx context.Context, imageBytes []byte, features []feature) (*annotateResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: api key required", ErrTransport)
	}

	payload := annotateBatchRequest{
		Requests: []annotateRequest{{
			Image:    annotateImage{Content: imageBytes},
			Features: features,
		}},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("vision annotate: encode request: %w", err)
	}

	endpoint, err := url.Parse(c.baseURL + "/images:annotate")
	if err != nil {
		return nil, fmt.Errorf("vision annotate: build url: %w", err)
	}
	query := endpoint.Query()
	query.Set("key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	batch, err := c.breaker.Execute(func() (*annotateBatchResponse, error) {
		return c.doWithRetry(ctx, endpoint.String(), encoded)
	})
	if err != nil {
		// Breaker-open errors originate outside doWithRetry and still
		// classify as transport failures.
		if errors.Is(err, ErrTransport) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if len(batch.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty annotate response", ErrTransport)
	}
	resp := &batch.Responses[0]
	if resp.Error != nil && resp.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrTransport, resp.Error.Message)
	}
	return resp, nil
}

func (c *Client) doWithRetry(ctx context.Context, endpoint string, body []byte) (*annotateBatchResponse, error) {
	var lastErr error
	attempts := c.retry.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
			case <-time.After(c.retry.backoffFor(attempt)):
			}
		}

		batch, retryable, err := c.doOnce(ctx, endpoint, body)
		if err == nil {
			return batch, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, endpoint string, body []byte) (*annotateBatchResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, true, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, truncate(string(data), 200))
	}

	var batch annotateBatchResponse
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, false, fmt.Errorf("%w: decode response: %w", ErrTransport, err)
	}
	return &batch, false, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
