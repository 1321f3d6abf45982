package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthfeed/internal/simulator"
	"github.com/synthfeed/internal/symbols"
	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080},
	}

	// Pin the clock mid-session on the simulated trading day.
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	market, err := simulator.NewMarketClock(
		&config.SessionConfig{SimulatedDate: "2024-06-14", Timezone: "UTC"},
		simulator.FixedClock(now),
	)
	require.NoError(t, err)

	return NewServer(cfg, log, symbols.NewManager(log), market, nil, nil)
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleGetSymbols(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/symbols")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Symbols []models.SymbolInfo `json:"symbols"`
		Count   int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, body.Count, len(body.Symbols))
	assert.Greater(t, body.Count, 0)
}

func TestHandleGetSymbolNotFound(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/symbols/ZZZZ")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetQuote(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/symbols/NEXA/quote")
	require.Equal(t, http.StatusOK, rec.Code)

	var quote models.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, "NEXA", quote.Symbol)
	assert.Greater(t, quote.Price, 0.0)
	assert.Greater(t, quote.Volume, int64(0))
}

func TestHandleGetBars(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		timeframe models.Timeframe
	}{
		{"default timeframe", "", http.StatusOK, models.TimeframeIntraday},
		{"intraday", "?timeframe=intraday", http.StatusOK, models.TimeframeIntraday},
		{"hourly", "?timeframe=hourly5d", http.StatusOK, models.TimeframeHourly5D},
		{"daily", "?timeframe=daily1m", http.StatusOK, models.TimeframeDaily1M},
		{"unsupported", "?timeframe=weekly", http.StatusBadRequest, ""},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, "/api/v1/symbols/QBIT/bars"+tt.query)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}

			var series models.Series
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
			assert.Equal(t, tt.timeframe, series.Timeframe)
			assert.NotEmpty(t, series.Bars)
		})
	}
}

func TestHandleGetExtended(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/symbols/VOLT/series/extended?periods=10&steps=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Symbol  string              `json:"symbol"`
		Periods int                 `json:"periods"`
		Points  []models.PricePoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VOLT", body.Symbol)
	assert.Equal(t, 10, body.Periods)
	assert.NotEmpty(t, body.Points)
}

func TestHandleGetExtendedRejectsBadParams(t *testing.T) {
	s := newTestServer(t)

	for _, query := range []string{"?periods=0", "?periods=9999", "?steps=-1", "?periods=abc"} {
		rec := doRequest(t, s, "/api/v1/symbols/NEXA/series/extended"+query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %s", query)
	}
}
