package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobdesk/internal/handlers"
	"jobdesk/internal/middlewares"
	"jobdesk/internal/models"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.NewPrometheusMiddleware().Instrument)
	r.Use(middlewares.RateLimit)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	s.registerUserRoutes(r)
	s.registerCompanyRoutes(r)
	s.registerAdminRoutes(r)

	return r
}

func (s *Server) registerUserRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userFlow, s.userProfiles, s.jobService)
	auth := middlewares.RequireRole(s.tokens, models.RoleUser)

	r.HandleFunc("/api/users/register", uh.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/users/verify-otp", uh.VerifyOTP).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/users/login", uh.Login).Methods("POST", "OPTIONS")

	r.Handle("/api/users/profile", auth(http.HandlerFunc(uh.GetProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/users/update-profile", auth(http.HandlerFunc(uh.UpdateProfile))).Methods("PUT", "OPTIONS")
	r.Handle("/api/users/jobs", auth(http.HandlerFunc(uh.ListOpenJobs))).Methods("GET", "OPTIONS")
	r.Handle("/api/users/jobs/{id}/apply", auth(http.HandlerFunc(uh.Apply))).Methods("POST", "OPTIONS")
	r.Handle("/api/users/applications", auth(http.HandlerFunc(uh.ListApplications))).Methods("GET", "OPTIONS")
}

func (s *Server) registerCompanyRoutes(r *mux.Router) {
	coh := handlers.NewCompanyHandler(s.companyFlow, s.companyProfiles, s.jobService)
	auth := middlewares.RequireRole(s.tokens, models.RoleCompany)

	r.HandleFunc("/api/companies/register", coh.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/companies/verify", coh.VerifyOTP).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/companies/login", coh.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/companies/verify-login-otp", coh.VerifyLoginOTP).Methods("POST", "OPTIONS")

	r.Handle("/api/companies/2fa-toggle", auth(http.HandlerFunc(coh.Toggle2FA))).Methods("PATCH", "OPTIONS")
	r.Handle("/api/companies/profile", auth(http.HandlerFunc(coh.GetProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/companies/update-profile", auth(http.HandlerFunc(coh.UpdateProfile))).Methods("PUT", "OPTIONS")
	r.Handle("/api/companies/dashboard", auth(http.HandlerFunc(coh.Dashboard))).Methods("GET", "OPTIONS")
	r.Handle("/api/companies/jobs", auth(http.HandlerFunc(coh.CreateJob))).Methods("POST", "OPTIONS")
	r.Handle("/api/companies/jobs", auth(http.HandlerFunc(coh.ListJobs))).Methods("GET", "OPTIONS")
	r.Handle("/api/companies/jobs/{id}/applications", auth(http.HandlerFunc(coh.ListJobApplications))).Methods("GET", "OPTIONS")
	r.Handle("/api/companies/applications/{id}", auth(http.HandlerFunc(coh.UpdateApplicationStatus))).Methods("PATCH", "OPTIONS")
}

func (s *Server) registerAdminRoutes(r *mux.Router) {
	adh := handlers.NewAdminHandler(s.adminFlow, s.adminProfiles, s.adminService)
	auth := middlewares.RequireRole(s.tokens, models.RoleAdmin)

	r.HandleFunc("/api/admins/login", adh.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/admins/verify-otp", adh.VerifyLoginOTP).Methods("POST", "OPTIONS")

	r.Handle("/api/admins/profile", auth(http.HandlerFunc(adh.GetProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/admins/toggle-2fa-by-id", auth(http.HandlerFunc(adh.Toggle2FA))).Methods("PUT", "OPTIONS")
	r.Handle("/api/admins/companies", auth(http.HandlerFunc(adh.ListCompanies))).Methods("GET", "OPTIONS")
	r.Handle("/api/admins/dashboard", auth(http.HandlerFunc(adh.Dashboard))).Methods("GET", "OPTIONS")
}
