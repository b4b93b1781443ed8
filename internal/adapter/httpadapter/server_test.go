package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/phone-temp-checker/internal/adapter/battery"
	"github.com/couchcryptid/phone-temp-checker/internal/adapter/httpadapter"
	"github.com/couchcryptid/phone-temp-checker/internal/checker"
	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	"github.com/couchcryptid/phone-temp-checker/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type failingProber struct{}

func (failingProber) Probe(_ context.Context) (domain.BatteryStatus, error) {
	return domain.BatteryStatus{}, errors.New("ioctl failed")
}

// busyService reports every detection as rejected.
type busyService struct{ httpadapter.Service }

func (busyService) Detect(ctx context.Context) (checker.Outcome, error) {
	n := domain.NewNotice(domain.SeverityWarning, "Detection in progress", "wait")
	return checker.Outcome{Notice: &n}, checker.ErrBusy
}

type responseBody struct {
	Status *domain.Status `json:"status"`
	Notice *domain.Notice `json:"notice"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(prober domain.BatteryProber, readyErr error) *httpadapter.Server {
	c := checker.New(prober, nil, discardLogger(), observability.NewMetricsForTesting(), time.Second)
	return httpadapter.NewServer(":0", c, &mockReadiness{err: readyErr}, discardLogger())
}

func do(t *testing.T, srv http.Handler, method, path, body string) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	srv.ServeHTTP(rec, req)

	var out responseBody
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestCheck_StringInput(t *testing.T) {
	srv := newTestServer(nil, nil)

	rec, body := do(t, srv, http.MethodPost, "/api/v1/check", `{"temperature":"44"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Status)
	assert.Equal(t, domain.BandWarm, body.Status.Info.Band)
	assert.Nil(t, body.Notice)
}

func TestCheck_NumberInput(t *testing.T) {
	srv := newTestServer(nil, nil)

	rec, body := do(t, srv, http.MethodPost, "/api/v1/check", `{"temperature":45}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Status)
	assert.Equal(t, domain.BandHot, body.Status.Info.Band)
}

func TestCheck_InvalidInput(t *testing.T) {
	srv := newTestServer(nil, nil)

	rec, body := do(t, srv, http.MethodPost, "/api/v1/check", `{"temperature":"abc"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, body.Status)
	require.NotNil(t, body.Notice)
	assert.Equal(t, domain.SeverityWarning, body.Notice.Severity)

	rec, _ = do(t, srv, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheck_MalformedBodyRejectedByChecker(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	c := checker.New(nil, nil, discardLogger(), metrics, time.Second)
	srv := httpadapter.NewServer(":0", c, &mockReadiness{}, discardLogger())

	for _, payload := range []string{`{not json`, `{}`} {
		rec, body := do(t, srv, http.MethodPost, "/api/v1/check", payload)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, payload)
		assert.Nil(t, body.Status)
		require.NotNil(t, body.Notice)
		assert.Equal(t, "Invalid temperature", body.Notice.Title)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CheckRejections.WithLabelValues("invalid_input")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Notices.WithLabelValues(string(domain.SeverityWarning))))
}

func TestDetect_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		prober     domain.BatteryProber
		code       int
		severity   domain.Severity
		wantStatus bool
	}{
		{"unsupported", nil, http.StatusServiceUnavailable, domain.SeverityWarning, false},
		{"unsupported platform", battery.Unsupported{}, http.StatusServiceUnavailable, domain.SeverityWarning, false},
		{"failed", failingProber{}, http.StatusBadGateway, domain.SeverityError, false},
		{"estimated", battery.StaticProber{Status: domain.BatteryStatus{Charging: true, Level: 0.5}}, http.StatusOK, domain.SeverityInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(tt.prober, nil)

			rec, body := do(t, srv, http.MethodPost, "/api/v1/detect", "")

			assert.Equal(t, tt.code, rec.Code)
			require.NotNil(t, body.Notice)
			assert.Equal(t, tt.severity, body.Notice.Severity)
			assert.Equal(t, tt.wantStatus, body.Status != nil)
		})
	}
}

func TestDetect_Busy(t *testing.T) {
	srv := httpadapter.NewServer(":0", busyService{}, &mockReadiness{}, discardLogger())

	rec, body := do(t, srv, http.MethodPost, "/api/v1/detect", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, body.Notice)
}

func TestStatus_AfterCheck(t *testing.T) {
	srv := newTestServer(nil, nil)

	rec, _ := do(t, srv, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	do(t, srv, http.MethodPost, "/api/v1/check", `{"temperature":"60"}`)

	rec, body := do(t, srv, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body.Status)
	assert.Equal(t, domain.BandDangerous, body.Status.Info.Band)
	assert.Equal(t, 60.0, body.Status.Reading.Celsius)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(nil, fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/check", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
