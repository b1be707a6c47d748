package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/models"
)

// Claims is the payload of both token kinds. Challenge tokens carry an OTP id
// binding the holder to a pending code exchange; session tokens do not.
type Claims struct {
	ID    string `json:"id"`
	OTPID string `json:"otp_id,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsChallenge() bool {
	return c.OTPID != ""
}

type TokenService interface {
	IssueChallenge(actorID, otpID primitive.ObjectID, role models.Role) (string, error)
	IssueSession(actorID primitive.ObjectID, role models.Role, ttl time.Duration) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type tokenService struct {
	key          []byte
	challengeTTL time.Duration
}

func NewTokenService(key []byte, challengeTTL time.Duration) TokenService {
	return &tokenService{key: key, challengeTTL: challengeTTL}
}

func (s *tokenService) IssueChallenge(actorID, otpID primitive.ObjectID, role models.Role) (string, error) {
	claims := &Claims{
		ID:    actorID.Hex(),
		OTPID: otpID.Hex(),
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.challengeTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *tokenService) IssueSession(actorID primitive.ObjectID, role models.Role, ttl time.Duration) (string, error) {
	claims := &Claims{
		ID:   actorID.Hex(),
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Verify checks signature and expiry. All failures collapse into
// ErrInvalidToken; callers must not distinguish malformed from expired.
func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
