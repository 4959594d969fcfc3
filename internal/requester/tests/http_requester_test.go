package tests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codeorbit/codeorbit-client/internal/config"
	"github.com/codeorbit/codeorbit-client/internal/loading"
	"github.com/codeorbit/codeorbit-client/internal/requester"
	"github.com/codeorbit/codeorbit-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastTiming keeps retry tests quick; timing-sensitive tests use the defaults.
var fastTiming = &requester.Timing{Timeout: 2 * time.Second, BackoffUnit: 10 * time.Millisecond}

type harness struct {
	requester   *requester.HTTPRequester
	coordinator *loading.Coordinator
	recorder    *loading.Recorder
}

func newHarness(t *testing.T, baseURL string, store session.Reader, timing *requester.Timing, transport http.RoundTripper) *harness {
	t.Helper()
	coordinator := loading.NewCoordinator()
	recorder := &loading.Recorder{}
	coordinator.Subscribe(recorder)

	r := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		APIConfig:   &config.APIConfig{BaseURL: baseURL, UserAgent: "codeorbit-test"},
		AuthManager: requester.NewSessionAuthManager(store),
		Loading:     coordinator,
		Transport:   transport,
		Timing:      timing,
	})
	return &harness{requester: r, coordinator: coordinator, recorder: recorder}
}

func assertLoaderSettled(t *testing.T, h *harness) {
	t.Helper()
	assert.Equal(t, 0, h.coordinator.InFlight())
	for _, s := range h.recorder.States() {
		assert.GreaterOrEqual(t, s.InFlight, 0)
		assert.Equal(t, s.InFlight > 0, s.Visible, "visible must track counter: %+v", s)
	}
	if last, ok := h.recorder.Last(); ok {
		assert.False(t, last.Visible)
	}
}

func TestHTTPRequester(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		opts           []requester.Option
		serverResponse func(t *testing.T, attempt int32, w http.ResponseWriter, r *http.Request)
		wantAttempts   int32
		checkResponse  func(t *testing.T, response *requester.Response, err error)
		checkLoader    func(t *testing.T, states []loading.State)
	}{
		{
			name:   "GET Success",
			method: http.MethodGet,
			path:   "/internships",
			serverResponse: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/internships", r.URL.Path)
				assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
				assert.Equal(t, "codeorbit-test", r.Header.Get("User-Agent"))
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "i1", "title": "Go Backend"}})
			},
			wantAttempts: 1,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, response.StatusCode)

				var body []map[string]string
				require.NoError(t, response.Decode(&body))
				require.Len(t, body, 1)
				assert.Equal(t, "Go Backend", body[0]["title"])
			},
			checkLoader: func(t *testing.T, states []loading.State) {
				assert.Equal(t, []loading.State{
					{InFlight: 1, Visible: true, Message: loading.DefaultMessage},
					{InFlight: 0, Visible: false},
				}, states)
			},
		},
		{
			name:   "POST JSON Body",
			method: http.MethodPost,
			path:   "contact",
			body:   map[string]string{"name": "Asha", "message": "hello"},
			opts:   []requester.Option{requester.WithLoaderMessage("Sending message...")},
			serverResponse: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/contact", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "hello", body["message"])

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"status":"created"}`))
			},
			wantAttempts: 1,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusCreated, response.StatusCode)
			},
			checkLoader: func(t *testing.T, states []loading.State) {
				require.NotEmpty(t, states)
				assert.Equal(t, "Sending message...", states[0].Message)
			},
		},
		{
			name:   "Client Error Is Not Retried",
			method: http.MethodGet,
			path:   "/internships/missing",
			serverResponse: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"internship not found"}`))
			},
			wantAttempts: 1,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				var apiErr *requester.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
				assert.JSONEq(t, `{"message":"internship not found"}`, string(apiErr.Body))
				require.NotNil(t, response)
				assert.Equal(t, http.StatusNotFound, response.StatusCode)
			},
		},
		{
			name:   "Server Error Exhausts Retries",
			method: http.MethodGet,
			path:   "/internships",
			serverResponse: func(t *testing.T, attempt int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = fmt.Fprintf(w, `{"attempt":%d}`, attempt)
			},
			wantAttempts: 3,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				var apiErr *requester.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
				assert.JSONEq(t, `{"attempt":3}`, string(apiErr.Body), "last response is surfaced")
			},
			checkLoader: func(t *testing.T, states []loading.State) {
				// one start and one stop per attempt
				assert.Len(t, states, 6)
			},
		},
		{
			name:   "Server Error Then Success",
			method: http.MethodPut,
			path:   "/admin/users/u1/role",
			body:   map[string]string{"role": "admin"},
			serverResponse: func(t *testing.T, attempt int32, w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body), "body is resent on retry")
				assert.Equal(t, "admin", body["role"])
				if attempt == 1 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = w.Write([]byte(`{"ok":true}`))
			},
			wantAttempts: 2,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(response.Body))
			},
		},
		{
			name:   "Loader Opt Out",
			method: http.MethodDelete,
			path:   "/admin/coupons/c1",
			opts:   []requester.Option{requester.WithoutLoader()},
			serverResponse: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			wantAttempts: 1,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
				assert.Equal(t, http.StatusNoContent, response.StatusCode)
			},
			checkLoader: func(t *testing.T, states []loading.State) {
				assert.Empty(t, states)
			},
		},
		{
			name:   "Extra Header",
			method: http.MethodPatch,
			path:   "/admin/messages/m1/read",
			body:   []byte("raw"),
			opts:   []requester.Option{requester.WithHeader("Content-Type", "text/plain")},
			serverResponse: func(t *testing.T, _ int32, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
				w.WriteHeader(http.StatusOK)
			},
			wantAttempts: 1,
			checkResponse: func(t *testing.T, response *requester.Response, err error) {
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := attempts.Add(1)
				tt.serverResponse(t, n, w, r)
			}))
			defer server.Close()

			h := newHarness(t, server.URL, session.WithToken("abc123"), fastTiming, nil)

			resp, err := h.requester.Do(context.Background(), tt.method, tt.path, tt.body, tt.opts...)

			tt.checkResponse(t, resp, err)
			assert.Equal(t, tt.wantAttempts, attempts.Load())
			if tt.checkLoader != nil {
				tt.checkLoader(t, h.recorder.States())
			}
			assertLoaderSettled(t, h)
		})
	}
}

func TestHTTPRequester_AuthHeaderOnEveryAttempt(t *testing.T) {
	var mu sync.Mutex
	var headers []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	h := newHarness(t, server.URL, session.WithToken("abc123"), fastTiming, nil)
	_, err := h.requester.Get(context.Background(), "/student/dashboard")
	require.Error(t, err)

	assert.Equal(t, []string{"Bearer abc123", "Bearer abc123", "Bearer abc123"}, headers)
}

func TestHTTPRequester_SessionVariants(t *testing.T) {
	tests := []struct {
		name  string
		store session.Reader
	}{
		{name: "no session", store: session.NewMemoryStore(nil)},
		{name: "malformed session", store: session.NewMemoryStore([]byte("definitely not json"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth []string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = append(gotAuth, r.Header.Values("Authorization")...)
				_, _ = w.Write([]byte(`[]`))
			}))
			defer server.Close()

			h := newHarness(t, server.URL, tt.store, fastTiming, nil)
			resp, err := h.requester.Get(context.Background(), "/internships")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Empty(t, gotAuth)
		})
	}
}

type failingTransport struct {
	calls atomic.Int32
	err   error
}

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, f.err
}

func TestHTTPRequester_NetworkErrorRetried(t *testing.T) {
	transport := &failingTransport{err: errors.New("connection refused")}
	h := newHarness(t, "http://codeorbit.invalid", session.WithToken("abc123"), fastTiming, transport)

	resp, err := h.requester.Post(context.Background(), "/contact", map[string]string{"name": "x"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "connection refused")

	var apiErr *requester.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, int32(3), transport.calls.Load())
	assertLoaderSettled(t, h)
}

func TestHTTPRequester_CancelledContextNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	h := newHarness(t, server.URL, nil, fastTiming, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.requester.Get(ctx, "/internships")
	require.Error(t, err)
	assert.LessOrEqual(t, attempts.Load(), int32(1))
	assertLoaderSettled(t, h)
}

type trackedBody struct {
	io.Reader
	closed atomic.Bool
}

func (b *trackedBody) Close() error {
	b.closed.Store(true)
	return nil
}

// cancellingTransport cancels the call's context while answering with a 503.
type cancellingTransport struct {
	cancel context.CancelFunc
	body   *trackedBody
	calls  atomic.Int32
}

func (c *cancellingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	c.cancel()
	return &http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Header:     http.Header{},
		Body:       c.body,
		Request:    req,
	}, nil
}

func TestHTTPRequester_CancelledAfterResponseClosesBody(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	transport := &cancellingTransport{
		cancel: cancel,
		body:   &trackedBody{Reader: strings.NewReader(`{"message":"busy"}`)},
	}
	h := newHarness(t, "http://codeorbit.invalid", session.WithToken("abc123"), fastTiming, transport)

	resp, err := h.requester.Get(ctx, "/internships")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
	assert.True(t, transport.body.closed.Load(), "response body must be closed")
	assert.Equal(t, int32(1), transport.calls.Load())
	assertLoaderSettled(t, h)
}

func TestHTTPRequester_ConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	var arrived sync.WaitGroup
	const calls = 8
	arrived.Add(calls)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		<-release
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	h := newHarness(t, server.URL, session.WithToken("t"), fastTiming, nil)

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.requester.Get(context.Background(), "/internships")
			assert.NoError(t, err)
		}()
	}

	arrived.Wait()
	state := h.coordinator.State()
	assert.Equal(t, calls, state.InFlight)
	assert.True(t, state.Visible)

	close(release)
	wg.Wait()
	assertLoaderSettled(t, h)
}

// Retries wait 1s before the second attempt and 2s before the third.
func TestHTTPRequester_BackoffTiming(t *testing.T) {
	if testing.Short() {
		t.Skip("uses real backoff delays")
	}

	var mu sync.Mutex
	var arrivals []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrivals = append(arrivals, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	h := newHarness(t, server.URL, session.WithToken("abc123"), nil, nil)
	_, err := h.requester.Get(context.Background(), "/internships")

	var apiErr *requester.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	require.Len(t, arrivals, 3)
	assert.GreaterOrEqual(t, arrivals[1].Sub(arrivals[0]), time.Second)
	assert.GreaterOrEqual(t, arrivals[2].Sub(arrivals[1]), 2*time.Second)
}

// A POST that times out on every attempt rejects once, after both backoffs,
// with the busy indicator hidden.
func TestHTTPRequester_TimeoutExhaustsRetries(t *testing.T) {
	if testing.Short() {
		t.Skip("uses real backoff delays")
	}

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	h := newHarness(t, server.URL, session.WithToken("abc123"), &requester.Timing{Timeout: 100 * time.Millisecond}, nil)

	start := time.Now()
	resp, err := h.requester.Post(context.Background(), "/contact", map[string]string{"message": "hi"})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, int32(3), attempts.Load())
	assert.GreaterOrEqual(t, elapsed, 3*time.Second)
	assertLoaderSettled(t, h)
}
