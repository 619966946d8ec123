package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/profile"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/config"
	apperrors "github.com/cocreateceo/Vedic-Astro-sub002/pkg/errors"
)

func TestRouter_Health(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/healthz", "", newRouterUnderTest(t, &stubCharts{}, &stubProfiles{}, config.HTTPConfig{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestRouter_ComputeChartSuccess(t *testing.T) {
	svc := &stubCharts{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			require.Equal(t, "1979-07-30", req.Date)
			require.Equal(t, 5.5, req.UTCOffsetHours)
			return chart.Response{Placements: []chart.Placement{{Body: "sun", Sign: "Cancer"}}}, nil
		},
	}
	body := `{"date":"1979-07-30","time":"19:30","utcOffsetHours":5.5,"latitude":12.98,"longitude":77.58}`

	recorder := performRequest(http.MethodPost, "/api/v1/charts", body, newRouterUnderTest(t, svc, &stubProfiles{}, config.HTTPConfig{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chart.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Cancer", got.Placements[0].Sign)
}

func TestRouter_ComputeChartInvalidJSON(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{"latitude":"north"}`, newRouterUnderTest(t, &stubCharts{}, &stubProfiles{}, config.HTTPConfig{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_ComputeChartInvalidInput(t *testing.T) {
	svc := &stubCharts{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			return chart.Response{}, apperrors.Wrap("invalid_input", "latitude must be strictly between -90 and 90", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{"latitude":90}`, newRouterUnderTest(t, svc, &stubProfiles{}, config.HTTPConfig{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_input", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "latitude")
}

func TestRouter_ComputeBatch(t *testing.T) {
	svc := &stubCharts{
		batchFn: func(ctx context.Context, reqs []chart.Request) ([]chart.Response, error) {
			require.Len(t, reqs, 2)
			return []chart.Response{{CacheHit: true}, {CacheHit: false}}, nil
		},
	}
	body := `{"requests":[{"date":"2000-01-01"},{"date":"2001-01-01"}]}`

	recorder := performRequest(http.MethodPost, "/api/v1/charts/batch", body, newRouterUnderTest(t, svc, &stubProfiles{}, config.HTTPConfig{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Results []chart.Response `json:"results"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Results, 2)
	require.True(t, got.Results[0].CacheHit)
}

func TestRouter_ProfileLifecycle(t *testing.T) {
	id := uuid.New()
	stored := profile.Profile{ID: id, Name: "Ravi", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	profiles := &stubProfiles{
		createFn: func(ctx context.Context, req profile.CreateRequest) (profile.Profile, error) {
			require.Equal(t, "Ravi", req.Name)
			return stored, nil
		},
		getFn: func(ctx context.Context, raw string) (profile.Profile, error) {
			if raw != id.String() {
				return profile.Profile{}, apperrors.Wrap("not_found", "profile not found", nil)
			}
			return stored, nil
		},
		listFn: func(ctx context.Context, limit int) ([]profile.Profile, error) {
			require.Equal(t, 5, limit)
			return []profile.Profile{stored}, nil
		},
	}
	server := newRouterUnderTest(t, &stubCharts{}, profiles, config.HTTPConfig{})

	recorder := performRequest(http.MethodPost, "/api/v1/profiles", `{"name":"Ravi","birth":{"date":"1979-07-30"}}`, server)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(http.MethodGet, "/api/v1/profiles/"+id.String(), "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	var got profile.Profile
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Ravi", got.Name)

	recorder = performRequest(http.MethodGet, "/api/v1/profiles/"+uuid.NewString(), "", server)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "not_found", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(http.MethodGet, "/api/v1/profiles?limit=5", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), id.String())

	recorder = performRequest(http.MethodGet, "/api/v1/profiles?limit=abc", "", server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_ExportFailureIsBadGateway(t *testing.T) {
	profiles := &stubProfiles{
		exportFn: func(ctx context.Context, id string) (profile.StoredObject, error) {
			return profile.StoredObject{}, apperrors.Wrap("export_failed", "failed to store chart export", io.ErrUnexpectedEOF)
		},
	}
	server := newRouterUnderTest(t, &stubCharts{}, profiles, config.HTTPConfig{})

	recorder := performRequest(http.MethodPost, "/api/v1/profiles/"+uuid.NewString()+"/export", "", server)
	require.Equal(t, http.StatusBadGateway, recorder.Code)
	require.Equal(t, "export_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_DownloadExport(t *testing.T) {
	profiles := &stubProfiles{
		downloadFn: func(ctx context.Context, id string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(`{"name":"Ravi"}`)), nil
		},
	}
	server := newRouterUnderTest(t, &stubCharts{}, profiles, config.HTTPConfig{})

	recorder := performRequest(http.MethodGet, "/api/v1/profiles/"+uuid.NewString()+"/export", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	require.JSONEq(t, `{"name":"Ravi"}`, recorder.Body.String())
}

func TestRouter_UnknownErrorIsHidden(t *testing.T) {
	svc := &stubCharts{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			return chart.Response{}, apperrors.Wrap("chart_error", "request cancelled", context.Canceled)
		},
	}
	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{}`, newRouterUnderTest(t, svc, &stubProfiles{}, config.HTTPConfig{}))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "chart_error", errBody["error"]["code"])
	require.Equal(t, "something went wrong", errBody["error"]["message"])
}

func TestRouter_RetriesTransientChartFailures(t *testing.T) {
	var calls atomic.Int32
	svc := &stubCharts{
		computeFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			if calls.Add(1) < 3 {
				return chart.Response{}, apperrors.Wrap("chart_error", "transient", nil)
			}
			return chart.Response{CacheHit: true}, nil
		},
	}
	httpCfg := config.HTTPConfig{
		Retry: config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Exclude: []string{"/api/v1/profiles"}},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{}`, newRouterUnderTest(t, svc, &stubProfiles{}, httpCfg))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "3", recorder.Header().Get("X-Attempts"))
	require.EqualValues(t, 3, calls.Load())
}

func TestRouter_DoesNotRetryProfileCreation(t *testing.T) {
	var calls atomic.Int32
	profiles := &stubProfiles{
		createFn: func(ctx context.Context, req profile.CreateRequest) (profile.Profile, error) {
			calls.Add(1)
			return profile.Profile{}, apperrors.Wrap("profile_error", "failed to save profile", nil)
		},
	}
	httpCfg := config.HTTPConfig{
		Retry: config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Exclude: []string{"/api/v1/profiles"}},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/profiles", `{"name":"x"}`, newRouterUnderTest(t, &stubCharts{}, profiles, httpCfg))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.EqualValues(t, 1, calls.Load())
}

func TestRouter_RateLimit(t *testing.T) {
	httpCfg := config.HTTPConfig{
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1},
	}
	server := newRouterUnderTest(t, &stubCharts{}, &stubProfiles{}, httpCfg)

	require.Equal(t, http.StatusOK, performRequest(http.MethodPost, "/api/v1/charts", `{}`, server).Code)
	recorder := performRequest(http.MethodPost, "/api/v1/charts", `{}`, server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.NotEmpty(t, recorder.Header().Get("Retry-After"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	httpCfg := config.HTTPConfig{AllowedOrigins: []string{"https://charts.example"}}
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/charts", nil)
	req.Header.Set("Origin", "https://charts.example")
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, &stubCharts{}, &stubProfiles{}, httpCfg).Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://charts.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestIPRateLimiterRefills(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 2}, func() time.Time { return now })

	_, ok := limiter.take("1.2.3.4", 1)
	require.True(t, ok)
	_, ok = limiter.take("1.2.3.4", 1)
	require.True(t, ok)
	wait, ok := limiter.take("1.2.3.4", 1)
	require.False(t, ok)
	require.InDelta(t, 1.0, wait.Seconds(), 0.01)

	now = now.Add(2 * time.Second)
	_, ok = limiter.take("1.2.3.4", 1)
	require.True(t, ok)

	_, ok = limiter.take("5.6.7.8", 1)
	require.True(t, ok)
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, charts chart.Service, profiles profile.Service, httpCfg config.HTTPConfig) *http.Server {
	t.Helper()
	handler := NewHandler(charts, profiles, newTestLogger())
	httpCfg.Address = ":0"
	httpCfg.ReadTimeout = time.Second
	httpCfg.WriteTimeout = time.Second
	return NewRouter(&config.Config{HTTP: httpCfg}, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubCharts struct {
	computeFn func(ctx context.Context, req chart.Request) (chart.Response, error)
	batchFn   func(ctx context.Context, reqs []chart.Request) ([]chart.Response, error)
}

func (s *stubCharts) Compute(ctx context.Context, req chart.Request) (chart.Response, error) {
	if s.computeFn != nil {
		return s.computeFn(ctx, req)
	}
	return chart.Response{}, nil
}

func (s *stubCharts) ComputeBatch(ctx context.Context, reqs []chart.Request) ([]chart.Response, error) {
	if s.batchFn != nil {
		return s.batchFn(ctx, reqs)
	}
	return nil, nil
}

type stubProfiles struct {
	createFn   func(ctx context.Context, req profile.CreateRequest) (profile.Profile, error)
	getFn      func(ctx context.Context, id string) (profile.Profile, error)
	listFn     func(ctx context.Context, limit int) ([]profile.Profile, error)
	exportFn   func(ctx context.Context, id string) (profile.StoredObject, error)
	downloadFn func(ctx context.Context, id string) (io.ReadCloser, error)
}

func (s *stubProfiles) Create(ctx context.Context, req profile.CreateRequest) (profile.Profile, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return profile.Profile{}, nil
}

func (s *stubProfiles) Get(ctx context.Context, id string) (profile.Profile, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return profile.Profile{}, nil
}

func (s *stubProfiles) List(ctx context.Context, limit int) ([]profile.Profile, error) {
	if s.listFn != nil {
		return s.listFn(ctx, limit)
	}
	return nil, nil
}

func (s *stubProfiles) Export(ctx context.Context, id string) (profile.StoredObject, error) {
	if s.exportFn != nil {
		return s.exportFn(ctx, id)
	}
	return profile.StoredObject{}, nil
}

func (s *stubProfiles) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	if s.downloadFn != nil {
		return s.downloadFn(ctx, id)
	}
	return io.NopCloser(strings.NewReader("{}")), nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestResolveOrigin(t *testing.T) {
	require.Equal(t, "*", resolveOrigin("https://x.example", nil))
	require.Equal(t, "*", resolveOrigin("https://x.example", []string{"https://a.example", "*"}))
	require.Equal(t, "https://b.example", resolveOrigin("https://b.example", []string{"https://a.example", "https://b.example"}))
	require.Equal(t, "https://a.example", resolveOrigin("https://evil.example", []string{"https://a.example"}))
}

func TestDomainErrorMapping(t *testing.T) {
	cases := map[string]int{
		"invalid_input": http.StatusBadRequest,
		"not_found":     http.StatusNotFound,
		"export_failed": http.StatusBadGateway,
		"profile_error": http.StatusInternalServerError,
	}
	for code, status := range cases {
		httpErr := domainError(apperrors.Wrap(code, "boom", nil))
		require.Equal(t, status, httpErr.Status, code)
		require.Equal(t, code, httpErr.Code)
	}
	require.Equal(t, "internal_error", domainError(io.EOF).Code)
}

func TestIPRateLimiterChargesCost(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 6}, func() time.Time { return now })

	_, ok := limiter.take("1.2.3.4", batchRequestCost)
	require.True(t, ok)
	wait, ok := limiter.take("1.2.3.4", batchRequestCost)
	require.False(t, ok)
	require.InDelta(t, 4.0, wait.Seconds(), 0.01)
	_, ok = limiter.take("1.2.3.4", 1)
	require.True(t, ok)

	small := newIPRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 2}, func() time.Time { return now })
	_, ok = small.take("1.2.3.4", batchRequestCost)
	require.True(t, ok, "cost is clamped to the bucket capacity")
}

func TestRouter_BatchCostsMoreThanSingleChart(t *testing.T) {
	httpCfg := config.HTTPConfig{
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 6},
	}
	server := newRouterUnderTest(t, &stubCharts{}, &stubProfiles{}, httpCfg)

	require.Equal(t, http.StatusOK, performRequest(http.MethodPost, "/api/v1/charts/batch", `{"requests":[]}`, server).Code)
	recorder := performRequest(http.MethodPost, "/api/v1/charts/batch", `{"requests":[]}`, server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "240", recorder.Header().Get("Retry-After"))
	require.Equal(t, http.StatusOK, performRequest(http.MethodPost, "/api/v1/charts", `{}`, server).Code)
}

func TestRetryAfterSeconds(t *testing.T) {
	require.Equal(t, 1, retryAfterSeconds(0))
	require.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	require.Equal(t, 3, retryAfterSeconds(2100*time.Millisecond))
}

func TestRouter_RequestID(t *testing.T) {
	server := newRouterUnderTest(t, &stubCharts{}, &stubProfiles{}, config.HTTPConfig{})

	recorder := performRequest(http.MethodGet, "/healthz", "", server)
	_, err := uuid.Parse(recorder.Header().Get(requestIDHeader))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "chart-req-42")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "chart-req-42", rec.Header().Get(requestIDHeader))
}

func TestRetryPolicy(t *testing.T) {
	policy := newRetryPolicy(config.RetryConfig{MaxAttempts: 4, BaseBackoff: 100 * time.Millisecond, Exclude: []string{"/api/v1/profiles"}})

	require.Zero(t, policy.backoff(1))
	require.Equal(t, 100*time.Millisecond, policy.backoff(2))
	require.Equal(t, 400*time.Millisecond, policy.backoff(4))

	require.True(t, policy.replays(httptest.NewRequest(http.MethodPost, "/api/v1/charts", nil)))
	require.False(t, policy.replays(httptest.NewRequest(http.MethodPost, "/api/v1/profiles", nil)))
	require.False(t, policy.replays(httptest.NewRequest(http.MethodGet, "/api/v1/profiles/x/export", nil)))

	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout} {
		require.True(t, retryableStatus(status), status)
	}
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusNotImplemented, http.StatusHTTPVersionNotSupported} {
		require.False(t, retryableStatus(status), status)
	}
}

func TestRouter_RetriesExportOnStorageFailure(t *testing.T) {
	var calls atomic.Int32
	profiles := &stubProfiles{
		exportFn: func(ctx context.Context, id string) (profile.StoredObject, error) {
			if calls.Add(1) == 1 {
				return profile.StoredObject{}, apperrors.Wrap("export_failed", "bucket unavailable", nil)
			}
			return profile.StoredObject{Key: "charts/" + id + ".json"}, nil
		},
	}
	httpCfg := config.HTTPConfig{
		Retry: config.RetryConfig{Enabled: true, MaxAttempts: 3, BaseBackoff: time.Millisecond, Exclude: []string{"/api/v1/profiles"}},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/profiles/"+uuid.NewString()+"/export", "", newRouterUnderTest(t, &stubCharts{}, profiles, httpCfg))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "2", recorder.Header().Get(attemptsHeader))
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
	require.EqualValues(t, 2, calls.Load())
}
