package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/config"
)

const (
	retryBodyLimit = 1 << 20
	attemptsHeader = "X-Attempts"
)

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// retryPolicy decides which requests are replayed and how long to wait
// between attempts.
type retryPolicy struct {
	maxAttempts int
	base        time.Duration
	excluded    map[string]struct{}
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	p := retryPolicy{
		maxAttempts: cfg.MaxAttempts,
		base:        cfg.BaseBackoff,
		excluded:    make(map[string]struct{}, len(cfg.Exclude)),
	}
	for _, path := range cfg.Exclude {
		p.excluded[path] = struct{}{}
	}
	return p
}

// replays reports whether r may be sent through the handler more than once.
// Chart computation and exports are idempotent POSTs; excluded paths are not.
func (p retryPolicy) replays(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	_, skip := p.excluded[r.URL.Path]
	return !skip
}

// backoff returns the wait before the given attempt: base, 2·base, 4·base...
func (p retryPolicy) backoff(attempt int) time.Duration {
	if attempt < 2 {
		return 0
	}
	return p.base << (attempt - 2)
}

// retryableStatus reports whether a response may succeed on replay. 501 and
// 505 describe the request itself and will not change.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// withRetry replays idempotent POSTs whose response is a transient 5xx.
// The final response carries X-Attempts.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	policy := newRetryPolicy(cfg)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !policy.replays(r) {
			handler.ServeHTTP(w, r)
			return
		}
		payload, err := readRequestBody(r)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		for attempt := 1; ; attempt++ {
			if !waitContext(r.Context(), policy.backoff(attempt)) {
				logger.Warn("client went away during retry backoff", "path", r.URL.Path, "attempt", attempt)
				return
			}

			buffered := newBufferedResponse()
			handler.ServeHTTP(buffered, replayRequest(r, payload, requestID))
			if attempt == policy.maxAttempts || !retryableStatus(buffered.status) {
				buffered.header.Set(attemptsHeader, strconv.Itoa(attempt))
				buffered.writeTo(w)
				return
			}
			logger.Warn("transient failure, retrying request", "requestId", requestID, "path", r.URL.Path, "status", buffered.status, "attempt", attempt)
		}
	})
}

// waitContext sleeps for d and reports false if ctx ends first.
func waitContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func readRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// replayRequest clones r with a fresh body. Every attempt carries the same
// request id.
func replayRequest(r *http.Request, payload []byte, requestID string) *http.Request {
	clone := r.Clone(r.Context())
	clone.Header.Set(requestIDHeader, requestID)
	clone.Body = io.NopCloser(bytes.NewReader(payload))
	clone.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(payload)), nil
	}
	clone.ContentLength = int64(len(payload))
	return clone
}

// bufferedResponse holds one attempt's response until it is known to be final.
type bufferedResponse struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if !b.wroteHeader {
		b.status = status
		b.wroteHeader = true
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

// Flush is a no-op; the body is sent in writeTo.
func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) writeTo(w http.ResponseWriter) {
	dst := w.Header()
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}
