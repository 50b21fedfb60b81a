package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/jwt"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error) {
	args := m.Called(ctx, token)
	var user *entity.User
	if v := args.Get(0); v != nil {
		user = v.(*entity.User)
	}
	var claims *jwt.Claims
	if v := args.Get(1); v != nil {
		claims = v.(*jwt.Claims)
	}
	return user, claims, args.Error(2)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		assert.True(t, ok)
		_, ok = GetClaimsFromContext(r.Context())
		assert.True(t, ok)
		w.Header().Set("X-User", user.Email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
		status int
	}{
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"bad signature", "Bearer bad", usecase.ErrInvalidToken, http.StatusForbidden},
		{"revoked", "Bearer bad", usecase.ErrTokenRevoked, http.StatusUnauthorized},
		{"inactive user", "Bearer bad", usecase.ErrUserNotFound, http.StatusUnauthorized},
		{"store failure", "Bearer bad", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := new(mockAuthenticator)
			if tc.err != nil {
				auth.On("Authenticate", mock.Anything, "bad").Return(nil, nil, tc.err)
			}
			mw := NewAuthMiddleware(auth, quietLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not run")
			})).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAuthenticate_AttachesUser(t *testing.T) {
	auth := new(mockAuthenticator)
	auth.On("Authenticate", mock.Anything, "good").
		Return(&entity.User{ID: 1, Email: "a@x.com", Role: entity.RolePatient}, &jwt.Claims{UserID: 1}, nil)
	mw := NewAuthMiddleware(auth, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	mw.Authenticate(echoUser(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", rec.Header().Get("X-User"))
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		name   string
		user   *entity.User
		status int
	}{
		{"no user", nil, http.StatusUnauthorized},
		{"patient", &entity.User{Role: entity.RolePatient}, http.StatusForbidden},
		{"doctor", &entity.User{Role: entity.RoleDoctor}, http.StatusForbidden},
		{"admin", &entity.User{Role: entity.RoleAdmin}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), tc.user))
			}
			rec := httptest.NewRecorder()
			RequireAdmin(ok).ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	NewCORSMiddleware().Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/citas", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestLogging_RecordsStatus(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })

	rec := httptest.NewRecorder()
	NewLoggingMiddleware(log).Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/medicos/9", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, http.StatusNotFound, entry.Data["status"])
		assert.Equal(t, "/api/medicos/9", entry.Data["path"])
	}
}
