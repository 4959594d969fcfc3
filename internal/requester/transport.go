package requester

import (
	"fmt"
	"net/http"

	"github.com/codeorbit/codeorbit-client/internal/loading"
)

// newTransport composes the per-attempt middleware around base, outermost first:
// loader start, auth attach, send, loader stop. The retry decision runs after
// RoundTrip returns, so every attempt is counted and authenticated afresh.
func newTransport(base http.RoundTripper, coordinator *loading.Coordinator, auth AuthManager) http.RoundTripper {
	var rt = base
	if auth != nil {
		rt = &authTransport{next: rt, auth: auth}
	}
	if coordinator != nil {
		rt = &loaderTransport{next: rt, coordinator: coordinator}
	}
	return rt
}

// loaderTransport counts the attempt in the coordinator for the duration of
// the round trip, unless the call opted out.
type loaderTransport struct {
	next        http.RoundTripper
	coordinator *loading.Coordinator
}

func (t *loaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	opts := callOptionsFrom(req.Context())
	if !opts.showLoader {
		return t.next.RoundTrip(req)
	}

	// Stop fires when headers arrive, before the body is read and before the
	// retry decision. Body download time is not covered by the indicator.
	t.coordinator.Start(opts.loaderMessage)
	defer t.coordinator.Stop()
	return t.next.RoundTrip(req)
}

// authTransport applies authentication to a clone of the request.
type authTransport struct {
	next http.RoundTripper
	auth AuthManager
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if err := t.auth.ApplyAuth(clone); err != nil {
		return nil, fmt.Errorf("failed to apply authentication: %w", err)
	}
	return t.next.RoundTrip(clone)
}
