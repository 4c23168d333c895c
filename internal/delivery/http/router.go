package http

import (
	"net/http"

	"clinic-crm-service/internal/delivery/http/handler"
	"clinic-crm-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	patientHandler     *handler.PatientHandler
	appointmentHandler *handler.AppointmentHandler
	templateHandler    *handler.TemplateHandler
	campaignHandler    *handler.CampaignHandler
	teamHandler        *handler.TeamHandler
	dashboardHandler   *handler.DashboardHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	templateHandler *handler.TemplateHandler,
	campaignHandler *handler.CampaignHandler,
	teamHandler *handler.TeamHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		patientHandler:     patientHandler,
		appointmentHandler: appointmentHandler,
		templateHandler:    templateHandler,
		campaignHandler:    campaignHandler,
		teamHandler:        teamHandler,
		dashboardHandler:   dashboardHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Protected routes (any authenticated staff member)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Patient management
	protected.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Appointment management
	protected.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Template management
	protected.HandleFunc("/templates", r.templateHandler.ListTemplates).Methods(http.MethodGet)
	protected.HandleFunc("/templates", r.templateHandler.CreateTemplate).Methods(http.MethodPost)
	protected.HandleFunc("/templates/{id}", r.templateHandler.GetTemplate).Methods(http.MethodGet)
	protected.HandleFunc("/templates/{id}", r.templateHandler.UpdateTemplate).Methods(http.MethodPut)
	protected.HandleFunc("/templates/{id}", r.templateHandler.DeleteTemplate).Methods(http.MethodDelete)

	// Team and dashboard
	protected.HandleFunc("/team", r.teamHandler.ListTeam).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/stats", r.dashboardHandler.GetStats).Methods(http.MethodGet)
	protected.HandleFunc("/wallet", r.dashboardHandler.GetWallet).Methods(http.MethodGet)

	// Campaigns (admin only; sending spends wallet credit)
	campaigns := api.PathPrefix("/campaigns").Subrouter()
	campaigns.Use(r.authMiddleware.Authenticate)
	campaigns.Use(middleware.RequireAdmin)
	campaigns.HandleFunc("", r.campaignHandler.SendCampaign).Methods(http.MethodPost)
	campaigns.HandleFunc("/tags", r.campaignHandler.ListTags).Methods(http.MethodGet)
	campaigns.HandleFunc("/deliveries", r.campaignHandler.ListDeliveries).Methods(http.MethodGet)
	campaigns.HandleFunc("/{id}/deliveries", r.campaignHandler.ListCampaignDeliveries).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
