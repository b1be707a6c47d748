package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/metrics"
	"jobdesk/internal/models"
	"jobdesk/internal/repositories"
	"jobdesk/internal/utils"
)

type OTPService interface {
	// Issue invalidates any outstanding code for the actor and purpose,
	// persists a fresh 6-digit code and emails it.
	Issue(ctx context.Context, actorID primitive.ObjectID, role models.Role, email, purpose string, ttl time.Duration) (*models.OTP, error)
	// Consume validates a submitted code against the record, in order:
	// record exists, not already used, not expired, code matches. On success
	// the record is atomically marked used and can never be consumed again.
	Consume(ctx context.Context, otpID primitive.ObjectID, submittedCode string) (*models.OTP, error)
	DeleteExpired(ctx context.Context) error
}

type otpService struct {
	otpRepo      repositories.OTPRepository
	emailService EmailService
}

func NewOTPService(otpRepo repositories.OTPRepository, emailService EmailService) OTPService {
	return &otpService{otpRepo: otpRepo, emailService: emailService}
}

func (s *otpService) Issue(ctx context.Context, actorID primitive.ObjectID, role models.Role, email, purpose string, ttl time.Duration) (*models.OTP, error) {
	if err := s.otpRepo.InvalidateActive(ctx, actorID, purpose); err != nil {
		return nil, err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	otp := &models.OTP{
		ActorID:   actorID,
		Role:      role,
		Email:     email,
		OTPCode:   code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
		IsUsed:    false,
	}

	otp, err = s.otpRepo.Create(ctx, otp)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendOTP(email, code, ttl); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to send OTP email")
		return nil, err
	}

	metrics.OTPIssuedTotal.WithLabelValues(purpose).Inc()
	log.Info().Str("actor_id", actorID.Hex()).Str("purpose", purpose).Msg("OTP issued")
	return otp, nil
}

func (s *otpService) Consume(ctx context.Context, otpID primitive.ObjectID, submittedCode string) (*models.OTP, error) {
	otp, err := s.otpRepo.FindByID(ctx, otpID)
	if err != nil {
		return nil, err
	}
	if otp == nil {
		metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		return nil, ErrOTPNotFound
	}

	if otp.IsUsed {
		metrics.OTPVerificationsTotal.WithLabelValues("already_used").Inc()
		return nil, ErrOTPAlreadyUsed
	}

	if time.Now().After(otp.ExpiresAt) {
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		return nil, ErrOTPExpired
	}

	if otp.OTPCode != submittedCode {
		metrics.OTPVerificationsTotal.WithLabelValues("mismatch").Inc()
		return nil, ErrOTPMismatch
	}

	claimed, err := s.otpRepo.MarkUsed(ctx, otp.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race against a concurrent submission of the same code.
		metrics.OTPVerificationsTotal.WithLabelValues("already_used").Inc()
		return nil, ErrOTPAlreadyUsed
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	return otp, nil
}

func (s *otpService) DeleteExpired(ctx context.Context) error {
	deleted, err := s.otpRepo.DeleteExpired(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Debug().Int64("deleted", deleted).Msg("Reaped expired OTP records")
	}
	return nil
}
