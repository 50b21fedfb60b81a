package http

import (
	"net/http"

	"medical-appointments-api/internal/delivery/http/handler"
	"medical-appointments-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	doctorHandler      *handler.DoctorHandler
	specialtyHandler   *handler.SpecialtyHandler
	appointmentHandler *handler.AppointmentHandler
	historyHandler     *handler.HistoryHandler
	auditLogHandler    *handler.AuditLogHandler
	healthHandler      *handler.HealthHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	doctorHandler *handler.DoctorHandler,
	specialtyHandler *handler.SpecialtyHandler,
	appointmentHandler *handler.AppointmentHandler,
	historyHandler *handler.HistoryHandler,
	auditLogHandler *handler.AuditLogHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		doctorHandler:      doctorHandler,
		specialtyHandler:   specialtyHandler,
		appointmentHandler: appointmentHandler,
		historyHandler:     historyHandler,
		auditLogHandler:    auditLogHandler,
		healthHandler:      healthHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func adminOnly(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(h)
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/verify", r.authHandler.Verify).Methods(http.MethodGet)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Users: profile for any caller, the rest admin only
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/profile", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/profile", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	users.Handle("", adminOnly(r.userHandler.ListUsers)).Methods(http.MethodGet)
	users.Handle("/admin", adminOnly(r.userHandler.CreateStaff)).Methods(http.MethodPost)
	users.Handle("/{id:[0-9]+}", adminOnly(r.userHandler.UpdateUser)).Methods(http.MethodPut)

	// Doctor directory (public)
	api.HandleFunc("/medicos", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/medicos/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Specialties (open)
	specialties := api.PathPrefix("/especializaciones").Subrouter()
	specialties.HandleFunc("", r.specialtyHandler.ListSpecialties).Methods(http.MethodGet)
	specialties.HandleFunc("", r.specialtyHandler.CreateSpecialty).Methods(http.MethodPost)
	specialties.HandleFunc("/{id}", r.specialtyHandler.UpdateSpecialty).Methods(http.MethodPut)
	specialties.HandleFunc("/{id}", r.specialtyHandler.DeactivateSpecialty).Methods(http.MethodDelete)
	specialties.HandleFunc("/{id}/medicos", r.specialtyHandler.ListDoctors).Methods(http.MethodGet)

	// Appointments
	appointments := api.PathPrefix("/citas").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.Handle("/admin/all", adminOnly(r.appointmentHandler.ListAll)).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPut)

	// History
	history := api.PathPrefix("/historial").Subrouter()
	history.Use(r.authMiddleware.Authenticate)
	history.HandleFunc("", r.historyHandler.ListMine).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	// Preflight requests match no method-restricted route; answer them here so CORS runs.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
