package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health
//	GET /api/v1/days/today
//	GET /api/v1/days/{date}            ?hour=0..23
//	GET /api/v1/days/{date}/hours      ?auspicious=true
//	GET /api/v1/days                   ?start=&end=
//	GET /api/v1/lunar/{date}
//	GET /api/v1/solar                  ?day=&month=&year=
//	GET /api/v1/occurrences            ?frequency=&day=&month=&from=&to=&interval=&count=&format=ics
//	GET /api/v1/truc
//	GET /api/v1/truc/{slug}
//	GET /api/v1/unlucky                ?month=
//	GET /api/v1/calendar.ics           ?start=&end=
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		middleware.RealIP,
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteMethodNotAllowed(w)
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/days/today", handlers.GetToday)
		r.Get("/days/{date}", handlers.GetDay)
		r.Get("/days/{date}/hours", handlers.GetDayHours)
		r.Get("/days", handlers.GetDayRange)

		r.Get("/lunar/{date}", handlers.GetLunar)
		r.Get("/solar", handlers.GetSolar)
		r.Get("/occurrences", handlers.GetOccurrences)

		r.Get("/truc", handlers.ListTruc)
		r.Get("/truc/{slug}", handlers.GetTruc)
		r.Get("/unlucky", handlers.ListUnlucky)

		r.Get("/calendar.ics", handlers.GetCalendarICS)
	})

	return r
}
