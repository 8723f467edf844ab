package resthttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
)

// accessLog кладёт логгер в контекст запроса и пишет строку access-лога с метрикой.
func (s *Server) accessLog() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		hlog.NewHandler(s.Log),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			route := routePattern(r)
			s.Metrics.RecordRequest(route, strconv.Itoa(status), duration.Seconds())

			hlog.FromRequest(r).Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
	}
}

// routePattern возвращает шаблон маршрута chi, чтобы не плодить метки по id.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
