package requester

import (
	"context"
	"net/http"
	"time"

	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// checkRetry retries when no response arrived (connection failure, timeout)
// or the server answered with a 5xx status. Client errors and successful
// responses are final. Timeouts are not told apart from other network errors.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp == nil {
		return err != nil, nil
	}
	return resp.StatusCode >= http.StatusInternalServerError, nil
}

// linearBackoff waits unit × retry number before each retry.
// retryablehttp passes the zero-based index of the attempt that just failed.
func linearBackoff(unit time.Duration) retryablehttp.Backoff {
	return func(_, _ time.Duration, attemptNum int, resp *http.Response) time.Duration {
		wait := time.Duration(attemptNum+1) * unit
		fields := []zap.Field{
			zap.Int("retry", attemptNum+1),
			zap.Duration("wait", wait),
		}
		if resp != nil {
			fields = append(fields, zap.Int("status", resp.StatusCode))
		}
		logger.Warn("request failed, retrying", fields...)
		return wait
	}
}

// logAttempt traces each attempt, including retries.
func logAttempt(_ retryablehttp.Logger, req *http.Request, attempt int) {
	logger.Debug("sending request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("attempt", attempt+1),
	)
}
