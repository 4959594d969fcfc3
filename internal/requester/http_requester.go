package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/codeorbit/codeorbit-client/internal/config"
	"github.com/codeorbit/codeorbit-client/internal/loading"
	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HTTPRequester is the single call surface for CodeOrbit API access. Every
// call is authenticated from the persisted session, drives the shared busy
// indicator and is retried on network errors and 5xx responses.
type HTTPRequester struct {
	client    *retryablehttp.Client
	baseURL   string
	userAgent string
}

type HTTPRequesterParams struct {
	fx.In

	APIConfig   *config.APIConfig
	AuthManager AuthManager
	Loading     *loading.Coordinator

	// Transport replaces the pooled base transport. Used by tests.
	Transport http.RoundTripper `optional:"true"`
	Timing    *Timing           `optional:"true"`
}

// NewHTTPRequester creates a new HTTPRequester. Its configuration is fixed
// for its lifetime.
func NewHTTPRequester(params HTTPRequesterParams) *HTTPRequester {
	base := params.Transport
	if base == nil {
		base = cleanhttp.DefaultPooledTransport()
	}

	timeout, unit := RequestTimeout, BackoffUnit
	if params.Timing != nil {
		if params.Timing.Timeout > 0 {
			timeout = params.Timing.Timeout
		}
		if params.Timing.BackoffUnit > 0 {
			unit = params.Timing.BackoffUnit
		}
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{
		Timeout:   timeout,
		Transport: newTransport(base, params.Loading, params.AuthManager),
	}
	client.RetryMax = MaxRetries
	client.CheckRetry = checkRetry
	client.Backoff = linearBackoff(unit)
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.RequestLogHook = logAttempt
	client.Logger = logger.RetryLogger()

	baseURL := config.DefaultBaseURL
	userAgent := ""
	if params.APIConfig != nil {
		if params.APIConfig.BaseURL != "" {
			baseURL = params.APIConfig.BaseURL
		}
		userAgent = params.APIConfig.UserAgent
	}

	return &HTTPRequester{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/") + "/api",
		userAgent: userAgent,
	}
}

// BaseURL returns the URL every call path is resolved against.
func (r *HTTPRequester) BaseURL() string {
	return r.baseURL
}

// Get issues a GET request.
func (r *HTTPRequester) Get(ctx context.Context, path string, opts ...Option) (*Response, error) {
	return r.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with body.
func (r *HTTPRequester) Post(ctx context.Context, path string, body interface{}, opts ...Option) (*Response, error) {
	return r.Do(ctx, http.MethodPost, path, body, opts...)
}

// Put issues a PUT request with body.
func (r *HTTPRequester) Put(ctx context.Context, path string, body interface{}, opts ...Option) (*Response, error) {
	return r.Do(ctx, http.MethodPut, path, body, opts...)
}

// Patch issues a PATCH request with body.
func (r *HTTPRequester) Patch(ctx context.Context, path string, body interface{}, opts ...Option) (*Response, error) {
	return r.Do(ctx, http.MethodPatch, path, body, opts...)
}

// Delete issues a DELETE request. body may be nil.
func (r *HTTPRequester) Delete(ctx context.Context, path string, body interface{}, opts ...Option) (*Response, error) {
	return r.Do(ctx, http.MethodDelete, path, body, opts...)
}

// Do sends the request and returns the final response. A final status of 400
// or above is returned as *APIError together with the response; a call that
// never received a response returns the transport error.
func (r *HTTPRequester) Do(ctx context.Context, method, path string, body interface{}, opts ...Option) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := newCallOptions(opts)

	payload, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(withCallOptions(ctx, o), method, r.url(path), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	for key, value := range o.headers {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		// A response can accompany the error when the context ends after it arrived.
		if resp != nil {
			_ = resp.Body.Close()
		}
		logger.Error("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}
	if resp.StatusCode >= http.StatusBadRequest {
		logger.Debug("request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return response, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       bodyBytes,
			Headers:    resp.Header,
		}
	}
	return response, nil
}

// DoJSON sends the request and decodes a successful JSON response into dest.
func (r *HTTPRequester) DoJSON(ctx context.Context, method, path string, body, dest interface{}, opts ...Option) error {
	resp, err := r.Do(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	return resp.Decode(dest)
}

func (r *HTTPRequester) url(path string) string {
	if path == "" {
		return r.baseURL
	}
	return r.baseURL + "/" + strings.TrimLeft(path, "/")
}

// encodeBody turns a call body into a rewindable payload for retryablehttp.
func encodeBody(body interface{}) (interface{}, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "", nil
	case string:
		return []byte(b), "", nil
	case io.Reader:
		return b, "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
