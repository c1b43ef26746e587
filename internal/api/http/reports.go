package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guckert-dev/shopify-mcp/internal/entity"
)

const defaultWindowDays = 30

// ErrResponse is the JSON error envelope.
type ErrResponse struct {
	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (s *Server) getStoreAnalytics(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.rep.StoreAnalytics(r.Context(), window, r.URL.Query().Get("query"))
	s.respond(w, r, "store_analytics", res, err)
}

func (s *Server) getForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := entity.ForecastOptions{
		Scenario:    entity.ForecastScenario(q.Get("scenario")),
		Seasonality: q.Get("seasonality") != "false",
	}
	if raw := q.Get("horizons"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			h, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			opts.Horizons = append(opts.Horizons, h)
		}
	}
	res, err := s.rep.Forecast(r.Context(), opts)
	s.respond(w, r, "forecast", res, err)
}

func (s *Server) getConversionAnalysis(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.rep.ConversionAnalysis(r.Context(), window)
	s.respond(w, r, "conversion_analysis", res, err)
}

func (s *Server) getProductPerformance(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.rep.ProductPerformance(r.Context(), window, r.URL.Query().Get("query"))
	s.respond(w, r, "product_performance", res, err)
}

// respond logs the outcome under a fresh report id and writes either the
// report or a 502. The engine never partially aggregates, so any error means
// the upstream fetch or the parameters failed, not the math.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, report string, res any, err error) {
	reportID := uuid.NewString()
	logger := slog.Default().With(
		slog.String("report", report),
		slog.String("report_id", reportID))

	if err != nil {
		logger.ErrorContext(r.Context(), "report failed", slog.String("err", err.Error()))
		status := http.StatusBadGateway
		if errors.Is(err, entity.ErrInvalidParams) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	logger.InfoContext(r.Context(), "report served")
	writeJSON(w, http.StatusOK, res)
}

func windowFromQuery(r *http.Request) (entity.PeriodWindow, error) {
	days := defaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return entity.PeriodWindow{}, err
		}
		days = parsed
	}
	return entity.NewPeriodWindow(time.Now().UTC(), days)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encoding response", slog.String("err", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, &ErrResponse{
		StatusText: http.StatusText(status),
		ErrorText:  err.Error(),
	})
}
