package api

import (
	"encoding/json"
	"net/http"
	"time"

	domrepo "CycleSense/internal/domain/repository"
	icache "CycleSense/internal/service/cache"
	"CycleSense/internal/service/metrics"
	"CycleSense/internal/service/ratelimit"
	"CycleSense/internal/usecase"
	pkgmw "CycleSense/pkg/http/middleware"
	applogger "CycleSense/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InsightsPlainHandler serves a lightweight net/http surface for the
// read-heavy insight endpoints, with a local byte cache and a per-client
// rate limiter in front of the aggregator.
type InsightsPlainHandler struct {
	agg   *usecase.InsightAggregator
	cache icache.BytesCache
	rl    *ratelimit.Limiter
	l     *applogger.Logger
}

func NewInsightsPlainHandler(agg *usecase.InsightAggregator) *InsightsPlainHandler {
	metrics.Register()
	return &InsightsPlainHandler{agg: agg, rl: ratelimit.New()}
}

func (h *InsightsPlainHandler) SetCache(c icache.BytesCache) { h.cache = c }

// SetLogger injects a structured logger.
func (h *InsightsPlainHandler) SetLogger(l *applogger.Logger) { h.l = l }

// RegisterRoutes mounts the plain handlers on the shared Echo server.
// Widgets and wearable companions poll these without the response envelope.
func (h *InsightsPlainHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/widgets/insights", echo.WrapMiddleware(pkgmw.Metrics(h.l, 500*time.Millisecond)))
	g.GET("/prediction", echo.WrapHandler(h.Prediction()))
	g.GET("/anomalies", echo.WrapHandler(h.Anomalies()))
	g.GET("/health", echo.WrapHandler(h.Health()))
}

func (h *InsightsPlainHandler) Prediction() http.HandlerFunc {
	return h.section("prediction", func(r *http.Request, userID string, w domrepo.Window) (interface{}, error) {
		return h.agg.Prediction(r.Context(), userID, w)
	})
}

func (h *InsightsPlainHandler) Anomalies() http.HandlerFunc {
	return h.section("anomalies", func(r *http.Request, userID string, w domrepo.Window) (interface{}, error) {
		return h.agg.Anomalies(r.Context(), userID, w)
	})
}

func (h *InsightsPlainHandler) Health() http.HandlerFunc {
	return h.section("health", func(r *http.Request, userID string, w domrepo.Window) (interface{}, error) {
		return h.agg.Health(r.Context(), userID, w)
	})
}

func (h *InsightsPlainHandler) section(endpoint string, compute func(*http.Request, string, domrepo.Window) (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() { metrics.AnalyticsLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

		userID := r.URL.Query().Get("userId")
		if userID == "" {
			if h.l != nil {
				h.l.Warn("insights." + endpoint + " missing userId")
			}
			http.Error(w, "userId required", http.StatusBadRequest)
			return
		}
		window := domrepo.NormalizeWindow(r.URL.Query().Get("window"))
		if !h.rl.Allow(r.RemoteAddr+":"+endpoint, 5, 2) {
			if h.l != nil {
				h.l.Warn("insights."+endpoint+" rate_limited", applogger.String("remote", r.RemoteAddr))
			}
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		cacheKey := endpoint + ":" + userID + ":" + string(window)
		if h.cache != nil {
			if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
				if h.l != nil {
					h.l.Warn("insights."+endpoint+" cache_get_error", applogger.Error(err))
				}
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				if h.l != nil {
					h.l.Debug("insights."+endpoint+" cache_hit", applogger.String("key", cacheKey))
				}
				if _, err := w.Write(b); err != nil && h.l != nil {
					h.l.Warn("insights."+endpoint+" write_error", applogger.Error(err))
				}
				return
			}
			if h.l != nil {
				h.l.Debug("insights."+endpoint+" cache_miss", applogger.String("key", cacheKey))
			}
		}
		res, err := compute(r, userID, window)
		if err != nil {
			metrics.AnalyticsErrors.WithLabelValues(endpoint).Inc()
			if h.l != nil {
				h.l.Error("insights."+endpoint+" error", applogger.Error(err))
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		b, err := json.Marshal(res)
		if err != nil {
			if h.l != nil {
				h.l.Error("insights."+endpoint+" marshal_error", applogger.Error(err))
			}
			http.Error(w, "encode error", http.StatusInternalServerError)
			return
		}
		if h.cache != nil {
			if err := h.cache.SetBytes(cacheKey, b, 30*time.Second); err != nil && h.l != nil {
				h.l.Warn("insights."+endpoint+" cache_set_error", applogger.Error(err))
			}
		}
		if _, err := w.Write(b); err != nil && h.l != nil {
			h.l.Warn("insights."+endpoint+" write_error", applogger.Error(err))
		}
	}
}
