package routes

import (
	"net/http"

	"github.com/citasalud/scheduling-api/internal/api/handlers"
	"github.com/citasalud/scheduling-api/internal/api/middleware"
	"github.com/citasalud/scheduling-api/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	schedulingHandler   *handlers.SchedulingHandler
	availabilityHandler *handlers.AvailabilityHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	schedulingHandler *handlers.SchedulingHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		schedulingHandler:   schedulingHandler,
		availabilityHandler: availabilityHandler,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Scheduling endpoints
	r.mux.HandleFunc("POST /agendar", r.schedulingHandler.BookAppointment)
	r.mux.HandleFunc("DELETE /cancelar/{idCita}", r.schedulingHandler.CancelAppointment)

	// Availability endpoints
	r.mux.HandleFunc("GET /disponibilidad/{dni}", r.availabilityHandler.GetAvailability)
	r.mux.HandleFunc("POST /disponibilidad/{dni}", r.availabilityHandler.AddAvailability)
	r.mux.HandleFunc("DELETE /disponibilidad/{dni}", r.availabilityHandler.RemoveAvailability)

	// Patient listing lives at the root; more specific patterns above win.
	r.mux.HandleFunc("GET /{dniPaciente}", r.schedulingHandler.ListAppointments)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
