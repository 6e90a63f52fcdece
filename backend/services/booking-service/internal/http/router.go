package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"evcharge/backend/libs/metrics"
	"evcharge/backend/services/booking-service/internal/http/handlers"
	"evcharge/backend/services/booking-service/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers    *handlers.AuthHandlers
	CatalogHandlers *handlers.CatalogHandlers
	BookingHandlers *handlers.BookingHandlers
	EventsHandler   http.HandlerFunc
	HealthHandler   http.HandlerFunc
	Tokens          middleware.TokenValidator
	// AuthRateLimiter guards /api/auth; nil disables limiting.
	AuthRateLimiter *middleware.RateLimiter
}

// NewRouter wires HTTP routes with per-route middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)
	r.Use(mux.MiddlewareFunc(metrics.InstrumentHandler(routeTemplate)))

	r.Handle("/health", deps.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	limited := func(handler http.HandlerFunc) http.Handler {
		if deps.AuthRateLimiter == nil {
			return handler
		}
		return deps.AuthRateLimiter.Handler(handler)
	}
	authenticated := func(handler http.HandlerFunc) http.Handler {
		return middleware.Chain(handler, middleware.Authenticate(deps.Tokens))
	}

	api := r.PathPrefix("/api").Subrouter()

	api.Handle("/auth/signup", limited(deps.AuthHandlers.Signup)).Methods(http.MethodPost)
	api.Handle("/auth/login", limited(deps.AuthHandlers.Login)).Methods(http.MethodPost)

	api.Handle("/bookings/locations", authenticated(deps.CatalogHandlers.Locations)).Methods(http.MethodGet)
	api.Handle("/bookings/stations/{locationId}", authenticated(deps.CatalogHandlers.Stations)).Methods(http.MethodGet)
	api.Handle("/bookings/slots/{stationId}/{date}", authenticated(deps.BookingHandlers.Slots)).Methods(http.MethodGet)
	api.Handle("/bookings/user", authenticated(deps.BookingHandlers.Mine)).Methods(http.MethodGet)
	api.Handle("/bookings", authenticated(deps.BookingHandlers.Create)).Methods(http.MethodPost)

	if deps.EventsHandler != nil {
		events := middleware.Authenticate(deps.Tokens, middleware.AllowQueryToken())(deps.EventsHandler)
		api.Handle("/bookings/events", events).Methods(http.MethodGet)
	}

	return r
}

// routeTemplate labels metrics with the matched route instead of the raw path.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
