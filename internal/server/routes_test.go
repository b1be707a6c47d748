package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobdesk/internal/models"
	"jobdesk/internal/services"
)

type mockDBService struct{}

func (m *mockDBService) Health() map[string]string {
	return map[string]string{"message": "It's healthy"}
}
func (m *mockDBService) Client() *mongo.Client     { return nil }
func (m *mockDBService) Database() *mongo.Database { return nil }
func (m *mockDBService) Close() error              { return nil }

// TestRegisterRoutes drives the public surface through the real router and
// middleware chain. One router for the whole test: the HTTP metrics register
// globally and must not be created twice.
func TestRegisterRoutes(t *testing.T) {
	tokens := services.NewTokenService([]byte("route-test-secret"), 10*time.Minute)
	s := &Server{
		db:     &mockDBService{},
		tokens: tokens,
	}
	router := s.RegisterRoutes()

	var addr int
	do := func(method, target, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		// Distinct client addresses keep the per-IP rate limiter out of the way.
		addr++
		req.RemoteAddr = fmt.Sprintf("10.0.0.%d:1234", addr)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("hello world", func(t *testing.T) {
		rr := do("GET", "/", "")
		assert.Equal(t, http.StatusOK, rr.Code)

		body, err := io.ReadAll(rr.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"Hello World"}`, string(body))
	})

	t.Run("health", func(t *testing.T) {
		rr := do("GET", "/health", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "It's healthy")
	})

	t.Run("metrics", func(t *testing.T) {
		rr := do("GET", "/metrics", "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		rr := do("GET", "/api/users/profile", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("protected route with malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/users/profile", nil)
		addr++
		req.RemoteAddr = fmt.Sprintf("10.0.0.%d:1234", addr)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong role rejected", func(t *testing.T) {
		companyToken, err := tokens.IssueSession(primitive.NewObjectID(), models.RoleCompany, time.Hour)
		require.NoError(t, err)

		rr := do("GET", "/api/users/profile", companyToken)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("challenge token rejected on protected route", func(t *testing.T) {
		challenge, err := tokens.IssueChallenge(primitive.NewObjectID(), primitive.NewObjectID(), models.RoleUser)
		require.NoError(t, err)

		rr := do("GET", "/api/admins/dashboard", challenge)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = do("GET", "/api/users/applications", challenge)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired session rejected", func(t *testing.T) {
		expired, err := tokens.IssueSession(primitive.NewObjectID(), models.RoleUser, -time.Minute)
		require.NoError(t, err)

		rr := do("GET", "/api/users/profile", expired)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
