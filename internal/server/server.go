package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"jobdesk/internal/database"
	"jobdesk/internal/repositories"
	"jobdesk/internal/services"
)

type Server struct {
	port       int
	httpServer *http.Server
	db         database.Service

	tokens services.TokenService

	userFlow    *services.AuthFlow
	companyFlow *services.AuthFlow
	adminFlow   *services.AuthFlow

	userProfiles    services.UserProfileService
	companyProfiles services.CompanyProfileService
	adminProfiles   services.AdminProfileService

	jobService   services.JobService
	adminService services.AdminService
	otpService   services.OTPService
}

func NewServer() *Server {
	portStr := os.Getenv("PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Str("port", portStr).Msg("Invalid PORT environment variable. Using default 8080.")
		port = 8080
	}

	db := database.New()

	userRepo := repositories.NewUserRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create user indexes")
	}
	if err := companyRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create company indexes")
	}
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin indexes")
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}
	emailService := services.NewEmailService(
		os.Getenv("SMTP_HOST"),
		smtpPort,
		os.Getenv("SMTP_USERNAME"),
		os.Getenv("SMTP_PASSWORD"),
	)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}
	tokens := services.NewTokenService([]byte(jwtSecret), envMinutes("CHALLENGE_TTL_MINUTES", 10*time.Minute))

	otpService := services.NewOTPService(otpRepo, emailService)

	userFlow := services.NewAuthFlow(userRepo, otpService, tokens, services.AuthFlowConfig{
		RegisterOTPTTL: envMinutes("OTP_REGISTER_TTL_MINUTES", 10*time.Minute),
		LoginOTPTTL:    envMinutes("OTP_LOGIN_TTL_MINUTES", 3*time.Minute),
		SessionTTL:     envHours("USER_SESSION_TTL_HOURS", 24*time.Hour),
	})
	companyFlow := services.NewAuthFlow(companyRepo, otpService, tokens, services.AuthFlowConfig{
		RegisterOTPTTL: envMinutes("COMPANY_OTP_REGISTER_TTL_MINUTES", 2*time.Minute),
		LoginOTPTTL:    envMinutes("OTP_LOGIN_TTL_MINUTES", 3*time.Minute),
		SessionTTL:     envHours("COMPANY_SESSION_TTL_HOURS", 168*time.Hour),
	})
	adminFlow := services.NewAuthFlow(adminRepo, otpService, tokens, services.AuthFlowConfig{
		RegisterOTPTTL: envMinutes("OTP_REGISTER_TTL_MINUTES", 10*time.Minute),
		LoginOTPTTL:    envMinutes("OTP_LOGIN_TTL_MINUTES", 3*time.Minute),
		SessionTTL:     envHours("ADMIN_SESSION_TTL_HOURS", 24*time.Hour),
	})

	s := &Server{
		port:            port,
		db:              db,
		tokens:          tokens,
		userFlow:        userFlow,
		companyFlow:     companyFlow,
		adminFlow:       adminFlow,
		userProfiles:    services.NewUserProfileService(userRepo),
		companyProfiles: services.NewCompanyProfileService(companyRepo),
		adminProfiles:   services.NewAdminProfileService(adminRepo),
		jobService:      services.NewJobService(jobRepo, applicationRepo),
		adminService:    services.NewAdminService(userRepo, companyRepo, jobRepo),
		otpService:      otpService,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	go s.reapExpiredOTPs()
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

// reapExpiredOTPs deletes stale ledger records so the collection does not grow
// without bound. Consumed codes stay until they expire.
func (s *Server) reapExpiredOTPs() {
	for {
		time.Sleep(10 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.otpService.DeleteExpired(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to reap expired OTP records")
		}
		cancel()
	}
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}

func envMinutes(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
		log.Warn().Str("name", name).Str("value", v).Msg("Invalid TTL override, using default")
	}
	return fallback
}

func envHours(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
		log.Warn().Str("name", name).Str("value", v).Msg("Invalid TTL override, using default")
	}
	return fallback
}
