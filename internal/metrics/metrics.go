package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Authentication flow metrics
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_registrations_total",
		Help: "Total number of registration attempts.",
	}, []string{"role", "status"}) // status: "success" or "failed"
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"role", "status"})
	OTPIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_issued_total",
		Help: "Total number of one-time codes issued.",
	}, []string{"purpose"})
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_verifications_total",
		Help: "Total number of one-time code verification attempts.",
	}, []string{"status"}) // status: "success", "not_found", "already_used", "expired", "mismatch"

	// Job board feature metrics
	JobsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_jobs_created_total",
		Help: "Total number of jobs posted.",
	})
	ApplicationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_applications_created_total",
		Help: "Total number of job applications submitted.",
	})
)
