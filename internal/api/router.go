// Package api assembles the HTTP surface: routing, middleware, and
// the handler wiring from services down to the postgres repositories.
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/alialif/JoinUp-Event-Management/internal/api/handlers"
	"github.com/alialif/JoinUp-Event-Management/internal/api/middleware"
	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/auth"
	"github.com/alialif/JoinUp-Event-Management/internal/authz"
	"github.com/alialif/JoinUp-Event-Management/internal/config"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/attendance"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
	"github.com/alialif/JoinUp-Event-Management/internal/metrics"
	"github.com/alialif/JoinUp-Event-Management/internal/render"
	"github.com/alialif/JoinUp-Event-Management/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires the full request path. The caller owns the pool's
// lifecycle; the router only borrows it.
func NewRouter(cfg config.Config, pool *pgxpool.Pool, logger zerolog.Logger) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	recorder := audit.NewStoreRecorder(repo.Audit(), logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)
	renderer := render.NewPDFRenderer(cfg.Certificates.OutputDir, logger)

	eventsService := events.NewService(repo.Events())
	membersService := members.NewService(repo.Members(), tokens, recorder, logger)
	registrationsService := registrations.NewService(repo.Registrations(), repo.Members(), repo.Events(), recorder, logger)
	attendanceService := attendance.NewService(repo.Attendance(), repo.Members(), repo.Events(), recorder, logger)
	certificatesService := certificates.NewService(repo.Certificates(), repo.Registrations(), renderer, recorder, cfg.Certificates.RenderTimeout, logger)
	auditService := audit.NewService(repo.Audit())

	env := cfg.Environment
	authHandler := handlers.NewAuthHandler(membersService, env)
	eventsHandler := handlers.NewEventsHandler(eventsService, env)
	registrationsHandler := handlers.NewRegistrationsHandler(registrationsService, env)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, env)
	certificatesHandler := handlers.NewCertificatesHandler(certificatesService, env)
	membersHandler := handlers.NewMembersHandler(membersService, env)
	auditHandler := handlers.NewAuditHandler(auditService, env)

	authed := middleware.JWTAuth(tokens, env)
	requires := func(operation string, h http.HandlerFunc) http.Handler {
		return authed(middleware.RequireOperation(operation, env)(h))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/v1/auth/signup", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Signup),
	}))
	mux.Handle("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: requires(authz.OpEventCreate, eventsHandler.Create),
	}))
	mux.Handle("/api/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(eventsHandler.Get),
		http.MethodPatch:  requires(authz.OpEventUpdate, eventsHandler.Update),
		http.MethodDelete: requires(authz.OpEventDelete, eventsHandler.Delete),
	}))
	mux.Handle("/api/v1/events/{id}/registrations", methodMux(map[string]http.Handler{
		http.MethodGet: authed(http.HandlerFunc(registrationsHandler.ListForEvent)),
	}))
	mux.Handle("/api/v1/events/{id}/attendance", methodMux(map[string]http.Handler{
		http.MethodGet: authed(http.HandlerFunc(attendanceHandler.ListForEvent)),
	}))

	mux.Handle("/api/v1/registrations", methodMux(map[string]http.Handler{
		http.MethodPost: requires(authz.OpRegistrationCreate, registrationsHandler.Create),
	}))
	mux.Handle("/api/v1/registrations/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: authed(http.HandlerFunc(registrationsHandler.Get)),
	}))
	mux.Handle("/api/v1/registrations/{id}/certificate", methodMux(map[string]http.Handler{
		http.MethodGet: authed(http.HandlerFunc(certificatesHandler.GetForRegistration)),
	}))

	mux.Handle("/api/v1/attendance", methodMux(map[string]http.Handler{
		http.MethodPost: requires(authz.OpAttendanceMark, attendanceHandler.Mark),
	}))

	mux.Handle("/api/v1/certificates", methodMux(map[string]http.Handler{
		http.MethodPost: requires(authz.OpCertificateIssue, certificatesHandler.Issue),
	}))
	// Verification stays public: the QR payload is scanned by people
	// without accounts.
	mux.Handle("/api/v1/certificates/verify", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(certificatesHandler.Verify),
	}))

	mux.Handle("/api/v1/members", methodMux(map[string]http.Handler{
		http.MethodGet: requires(authz.OpMemberList, membersHandler.List),
	}))
	mux.Handle("/api/v1/members/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: authed(http.HandlerFunc(membersHandler.Get)),
	}))
	mux.Handle("/api/v1/members/{id}/promote", methodMux(map[string]http.Handler{
		http.MethodPost: requires(authz.OpMemberPromote, membersHandler.Promote),
	}))
	mux.Handle("/api/v1/members/{id}/role", methodMux(map[string]http.Handler{
		http.MethodPatch: requires(authz.OpMemberChangeRole, membersHandler.ChangeRole),
	}))

	mux.Handle("/api/v1/audit", methodMux(map[string]http.Handler{
		http.MethodGet: requires(authz.OpAuditView, auditHandler.List),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
