package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guckert-dev/shopify-mcp/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReporter struct {
	analytics  *entity.StoreAnalyticsResult
	forecast   *entity.ForecastResult
	conversion *entity.ConversionAnalysisResult
	products   *entity.ProductPerformanceResult
	err        error

	gotWindow entity.PeriodWindow
	gotOpts   entity.ForecastOptions
}

func (s *stubReporter) StoreAnalytics(_ context.Context, window entity.PeriodWindow, _ string) (*entity.StoreAnalyticsResult, error) {
	s.gotWindow = window
	return s.analytics, s.err
}

func (s *stubReporter) Forecast(_ context.Context, opts entity.ForecastOptions) (*entity.ForecastResult, error) {
	s.gotOpts = opts
	return s.forecast, s.err
}

func (s *stubReporter) ConversionAnalysis(_ context.Context, window entity.PeriodWindow) (*entity.ConversionAnalysisResult, error) {
	s.gotWindow = window
	return s.conversion, s.err
}

func (s *stubReporter) ProductPerformance(_ context.Context, window entity.PeriodWindow, _ string) (*entity.ProductPerformanceResult, error) {
	s.gotWindow = window
	return s.products, s.err
}

func testServer(rep *stubReporter) *httptest.Server {
	s := New(&Config{}, rep)
	return httptest.NewServer(s.router())
}

func TestGetStoreAnalytics_OK(t *testing.T) {
	rep := &stubReporter{analytics: &entity.StoreAnalyticsResult{NewCustomers: 4}}
	srv := testServer(rep)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/analytics?days=7")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, 7, rep.gotWindow.LengthDays)

	var body entity.StoreAnalyticsResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.NewCustomers)
}

func TestGetStoreAnalytics_BadDays(t *testing.T) {
	srv := testServer(&stubReporter{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/analytics?days=soon")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/reports/analytics?days=-3")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetForecast_ParsesOptions(t *testing.T) {
	rep := &stubReporter{forecast: &entity.ForecastResult{}}
	srv := testServer(rep)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/forecast?scenario=aggressive&horizons=1,6&seasonality=false")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.ScenarioAggressive, rep.gotOpts.Scenario)
	assert.Equal(t, []int{1, 6}, rep.gotOpts.Horizons)
	assert.False(t, rep.gotOpts.Seasonality)
}

func TestGetForecast_DefaultsSeasonalityOn(t *testing.T) {
	rep := &stubReporter{forecast: &entity.ForecastResult{}}
	srv := testServer(rep)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/forecast")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.True(t, rep.gotOpts.Seasonality)
	assert.Nil(t, rep.gotOpts.Horizons, "absent horizons mean engine defaults")
}

func TestReportError_InvalidParamsIs400(t *testing.T) {
	rep := &stubReporter{err: fmt.Errorf("%w: bad horizon", entity.ErrInvalidParams)}
	srv := testServer(rep)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/forecast")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportError_FetchFailureIs502(t *testing.T) {
	rep := &stubReporter{err: errors.New("shopify orders: non-200 status code: 500")}
	srv := testServer(rep)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/conversion")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body ErrResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.ErrorText)
}

func TestGetProductPerformance_OK(t *testing.T) {
	rep := &stubReporter{products: &entity.ProductPerformanceResult{}}
	srv := testServer(rep)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/reports/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, defaultWindowDays, rep.gotWindow.LengthDays)
}
