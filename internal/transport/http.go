package transport

import (
	"log/slog"
	"net/http"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/domain/booking"
	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/go-chi/chi/v5"
)

// Server wires HTTP handlers over the admissions services.
type Server struct {
	apps     *application.Service
	slots    *slot.Service
	bookings *booking.Service
	audits   *audit.Service
	logger   *slog.Logger
}

// NewServer creates the API router with middleware.
func NewServer(
	apps *application.Service,
	slots *slot.Service,
	bookings *booking.Service,
	audits *audit.Service,
	authMiddleware func(http.Handler) http.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{
		apps:     apps,
		slots:    slots,
		bookings: bookings,
		audits:   audits,
		logger:   logger,
	}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}

		r.Route("/slots", func(r chi.Router) {
			r.Get("/", srv.handleListSlots)
			r.Post("/", srv.handleCreateSlot)
			r.Delete("/{id}", srv.handleDeleteSlot)
			r.Post("/{id}/release", srv.handleReleaseSlot)
			r.Post("/{id}/book", srv.handleBookSlot)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", srv.handleListApplications)
			r.Get("/mine", srv.handleListMyApplications)
			r.Post("/", srv.handleSubmitApplication)
			r.Get("/{id}", srv.handleGetApplication)
			r.Patch("/{id}", srv.handleUpdateApplication)
		})

		r.Get("/audit", srv.handleListAudit)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing principal")
		return auth.Principal{}, false
	}
	return principal, true
}
