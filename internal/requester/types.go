package requester

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codeorbit/codeorbit-client/internal/loading"
)

const (
	// RequestTimeout bounds every attempt. Some endpoints render documents
	// server-side and take tens of seconds.
	RequestTimeout = 60 * time.Second

	// MaxRetries is the number of attempts made after the first one.
	MaxRetries = 2

	// BackoffUnit is multiplied by the retry number: 1s before the first
	// retry, 2s before the second.
	BackoffUnit = time.Second
)

// Timing overrides the request timeout and backoff unit. Zero fields keep the defaults.
type Timing struct {
	Timeout     time.Duration
	BackoffUnit time.Duration
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v interface{}) error {
	if r == nil || len(r.Body) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// APIError is returned for any final response with a status of 400 or above.
// It carries the status and body exactly as the server sent them.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func (e *APIError) Error() string {
	body := string(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Option customizes a single call.
type Option func(*callOptions)

type callOptions struct {
	showLoader    bool
	loaderMessage string
	headers       map[string]string
}

func newCallOptions(opts []Option) callOptions {
	o := callOptions{showLoader: true, loaderMessage: loading.DefaultMessage}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithoutLoader keeps the call out of the in-flight counter, so it never
// shows or hides the busy indicator.
func WithoutLoader() Option {
	return func(o *callOptions) {
		o.showLoader = false
	}
}

// WithLoaderMessage sets the text shown while the call is pending.
func WithLoaderMessage(msg string) Option {
	return func(o *callOptions) {
		if msg != "" {
			o.loaderMessage = msg
		}
	}
}

// WithHeader sets an extra request header, e.g. a multipart Content-Type.
func WithHeader(key, value string) Option {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

type callOptionsKey struct{}

func withCallOptions(ctx context.Context, o callOptions) context.Context {
	return context.WithValue(ctx, callOptionsKey{}, o)
}

// callOptionsFrom returns the options of the call the request belongs to.
// Requests issued outside HTTPRequester get the defaults.
func callOptionsFrom(ctx context.Context) callOptions {
	if o, ok := ctx.Value(callOptionsKey{}).(callOptions); ok {
		return o
	}
	return newCallOptions(nil)
}
