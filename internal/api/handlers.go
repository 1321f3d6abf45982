package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/synthfeed/internal/simulator"
	"github.com/synthfeed/pkg/models"
)

const (
	maxExtendPeriods    = 50
	maxInterpolateSteps = 10
)

// handleGetSymbols returns the full symbol universe.
func (s *Server) handleGetSymbols(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbols": s.symbols.List(),
		"count":   s.symbols.Count(),
	})
}

// handleGetSymbol returns metadata for one symbol.
func (s *Server) handleGetSymbol(w http.ResponseWriter, r *http.Request) {
	info, ok := s.lookupSymbol(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleGetQuote returns the current derived quote for a symbol, served
// from the cache when a fresh memoized copy exists.
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	info, ok := s.lookupSymbol(w, r)
	if !ok {
		return
	}

	if s.redisCache != nil {
		if cached, err := s.redisCache.GetQuote(r.Context(), info.Symbol); err == nil && cached != nil {
			s.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	quote, err := simulator.BuildQuote(info.Symbol, info.BasePrice, s.market.State(), s.market.Now())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, quote)
}

// handleGetBars returns the series for a timeframe:
// intraday, hourly5d or daily1m.
func (s *Server) handleGetBars(w http.ResponseWriter, r *http.Request) {
	info, ok := s.lookupSymbol(w, r)
	if !ok {
		return
	}

	tf := models.Timeframe(r.URL.Query().Get("timeframe"))
	if tf == "" {
		tf = models.TimeframeIntraday
	}
	if !tf.Valid() {
		s.writeError(w, http.StatusBadRequest, "unsupported timeframe: "+string(tf))
		return
	}

	state := s.market.State()
	minute := simulator.CurrentMinute(state)

	if s.redisCache != nil {
		if cached, err := s.redisCache.GetSeries(r.Context(), info.Symbol, tf, state.TradingDay, minute); err == nil && cached != nil {
			s.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	series, err := simulator.BuildSeries(info.Symbol, info.BasePrice, tf, state)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.redisCache != nil {
		if err := s.redisCache.SetSeries(r.Context(), &series, state.TradingDay, minute); err != nil {
			s.logger.WithError(err).Warn("Failed to memoize series")
		}
	}

	s.writeJSON(w, http.StatusOK, series)
}

// handleGetExtended returns chart points for a timeframe extended backward
// into several synthetic prior periods, optionally with interpolated
// sub-points between real samples.
func (s *Server) handleGetExtended(w http.ResponseWriter, r *http.Request) {
	info, ok := s.lookupSymbol(w, r)
	if !ok {
		return
	}

	tf := models.Timeframe(r.URL.Query().Get("timeframe"))
	if tf == "" {
		tf = models.TimeframeIntraday
	}
	if !tf.Valid() {
		s.writeError(w, http.StatusBadRequest, "unsupported timeframe: "+string(tf))
		return
	}

	periods, ok := s.intParam(w, r, "periods", 1, maxExtendPeriods, 1)
	if !ok {
		return
	}
	steps, ok := s.intParam(w, r, "steps", 0, maxInterpolateSteps, 0)
	if !ok {
		return
	}

	series, err := simulator.BuildSeries(info.Symbol, info.BasePrice, tf, s.market.State())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := simulator.ExtendPeriods(info.Symbol, simulator.Points(series), periods)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if steps > 0 {
		points = simulator.Interpolate(points, steps, simulator.SymbolSeed(info.Symbol))
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":    info.Symbol,
		"timeframe": tf,
		"periods":   periods,
		"points":    points,
	})
}

// lookupSymbol resolves the path symbol or writes a 404.
func (s *Server) lookupSymbol(w http.ResponseWriter, r *http.Request) (models.SymbolInfo, bool) {
	symbol := mux.Vars(r)["symbol"]

	info, err := s.symbols.Get(symbol)
	if err != nil {
		if errors.Is(err, models.ErrUnknownSymbol) {
			s.writeError(w, http.StatusNotFound, err.Error())
		} else {
			s.writeError(w, http.StatusBadRequest, err.Error())
		}
		return models.SymbolInfo{}, false
	}
	return info, true
}

// intParam parses a bounded integer query parameter with a default.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string, min, max, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		s.writeError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
