package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"jobdesk/internal/metrics"
	"jobdesk/internal/models"
	"jobdesk/internal/repositories"
)

const bcryptCost = 10

// AuthFlowConfig carries the per-role lifetimes. TTLs differ between roles
// and flows, so they are parameters rather than constants.
type AuthFlowConfig struct {
	RegisterOTPTTL time.Duration
	LoginOTPTTL    time.Duration
	SessionTTL     time.Duration
}

// LoginResult is either a full session (ChallengeRequired false) or a pending
// OTP exchange whose Token is a short-lived challenge token.
type LoginResult struct {
	Token             string
	ChallengeRequired bool
	Actor             *models.Actor
}

// AuthFlow drives registration, email verification, login and the optional
// OTP second factor. The same flow serves users, companies and admins; the
// actor store decides which collection it speaks to.
type AuthFlow struct {
	store  repositories.ActorStore
	otp    OTPService
	tokens TokenService
	cfg    AuthFlowConfig
}

func NewAuthFlow(store repositories.ActorStore, otp OTPService, tokens TokenService, cfg AuthFlowConfig) *AuthFlow {
	return &AuthFlow{store: store, otp: otp, tokens: tokens, cfg: cfg}
}

// Register creates or overwrites an unverified actor record, re-hashing the
// password each call, then issues a registration OTP and a challenge token.
// Verified accounts are never overwritten.
func (f *AuthFlow) Register(ctx context.Context, email, password string, fields bson.M) (string, error) {
	role := string(f.store.Role())

	existing, err := f.store.FindActorByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.IsVerified {
		metrics.RegistrationsTotal.WithLabelValues(role, "failed").Inc()
		return "", ErrAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	fields["password"] = string(hashed)

	actor, err := f.store.UpsertPending(ctx, email, fields)
	if err != nil {
		if err == repositories.ErrVerifiedActorExists {
			metrics.RegistrationsTotal.WithLabelValues(role, "failed").Inc()
			return "", ErrAlreadyRegistered
		}
		return "", err
	}

	otp, err := f.otp.Issue(ctx, actor.ID, f.store.Role(), email, models.OTPPurposeRegistration, f.cfg.RegisterOTPTTL)
	if err != nil {
		return "", err
	}

	token, err := f.tokens.IssueChallenge(actor.ID, otp.ID, f.store.Role())
	if err != nil {
		return "", fmt.Errorf("could not generate challenge token: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(role, "success").Inc()
	log.Info().Str("role", role).Str("actor_id", actor.ID.Hex()).Msg("Registration OTP sent")
	return token, nil
}

// VerifyRegistration consumes the registration OTP bound into the challenge
// token and marks the actor verified. Replaying a consumed code fails with
// ErrOTPAlreadyUsed.
func (f *AuthFlow) VerifyRegistration(ctx context.Context, token, code string) error {
	actor, otpID, err := f.resolveChallenge(ctx, token)
	if err != nil {
		return err
	}

	if _, err := f.otp.Consume(ctx, otpID, code); err != nil {
		return err
	}

	if err := f.store.SetVerified(ctx, actor.ID); err != nil {
		return err
	}

	log.Info().Str("role", string(f.store.Role())).Str("actor_id", actor.ID.Hex()).Msg("Actor verified")
	return nil
}

// Login checks credentials. With 2FA disabled it returns a session token;
// with 2FA enabled it issues a login OTP and returns a challenge token
// instead. Unknown email and wrong password yield the same error.
func (f *AuthFlow) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	role := string(f.store.Role())

	actor, err := f.store.FindActorByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		metrics.LoginAttemptsTotal.WithLabelValues(role, "failed").Inc()
		log.Warn().Str("role", role).Str("email", email).Msg("Login attempt for unknown account")
		return nil, ErrInvalidCredentials
	}

	if !actor.IsVerified {
		metrics.LoginAttemptsTotal.WithLabelValues(role, "failed").Inc()
		return nil, ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.Password), []byte(password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(role, "failed").Inc()
		log.Warn().Str("role", role).Str("actor_id", actor.ID.Hex()).Msg("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	if actor.IsTwoFactorEnabled {
		otp, err := f.otp.Issue(ctx, actor.ID, f.store.Role(), actor.Email, models.OTPPurposeLogin, f.cfg.LoginOTPTTL)
		if err != nil {
			return nil, err
		}
		token, err := f.tokens.IssueChallenge(actor.ID, otp.ID, f.store.Role())
		if err != nil {
			return nil, fmt.Errorf("could not generate challenge token: %w", err)
		}
		log.Info().Str("role", role).Str("actor_id", actor.ID.Hex()).Msg("2FA challenge issued")
		return &LoginResult{Token: token, ChallengeRequired: true, Actor: actor}, nil
	}

	token, err := f.tokens.IssueSession(actor.ID, f.store.Role(), f.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues(role, "success").Inc()
	log.Info().Str("role", role).Str("actor_id", actor.ID.Hex()).Msg("Logged in")
	return &LoginResult{Token: token, Actor: actor}, nil
}

// VerifyLoginOTP completes the 2FA exchange and issues the session token.
func (f *AuthFlow) VerifyLoginOTP(ctx context.Context, token, code string) (string, *models.Actor, error) {
	actor, otpID, err := f.resolveChallenge(ctx, token)
	if err != nil {
		return "", nil, err
	}

	if _, err := f.otp.Consume(ctx, otpID, code); err != nil {
		return "", nil, err
	}

	sessionToken, err := f.tokens.IssueSession(actor.ID, f.store.Role(), f.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("could not generate token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(f.store.Role()), "success").Inc()
	log.Info().Str("role", string(f.store.Role())).Str("actor_id", actor.ID.Hex()).Msg("2FA login complete")
	return sessionToken, actor, nil
}

// ToggleTwoFactor flips the flag. Setting it to its current value is a no-op,
// not an error.
func (f *AuthFlow) ToggleTwoFactor(ctx context.Context, actorID primitive.ObjectID, enable bool) (bool, error) {
	actor, err := f.store.FindActorByID(ctx, actorID)
	if err != nil {
		return false, err
	}
	if actor == nil {
		return false, ErrActorNotFound
	}

	if err := f.store.SetTwoFactor(ctx, actorID, enable); err != nil {
		return false, err
	}
	return enable, nil
}

// resolveChallenge verifies a challenge token for this flow's role and loads
// the actor it names. Session tokens are rejected here; they carry no OTP id.
func (f *AuthFlow) resolveChallenge(ctx context.Context, token string) (*models.Actor, primitive.ObjectID, error) {
	claims, err := f.tokens.Verify(token)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	if claims.Role != string(f.store.Role()) || !claims.IsChallenge() {
		return nil, primitive.NilObjectID, ErrInvalidToken
	}

	actorID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, primitive.NilObjectID, ErrInvalidToken
	}
	otpID, err := primitive.ObjectIDFromHex(claims.OTPID)
	if err != nil {
		return nil, primitive.NilObjectID, ErrInvalidToken
	}

	actor, err := f.store.FindActorByID(ctx, actorID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	if actor == nil {
		return nil, primitive.NilObjectID, ErrActorNotFound
	}
	return actor, otpID, nil
}
