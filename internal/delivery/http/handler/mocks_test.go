package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/pkg/jwt"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, user *entity.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

func withVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var patient = &entity.User{ID: 5, Name: "Juan", Surname: "Paciente", Email: "juan@x.com", Role: entity.RolePatient, Status: entity.StatusActive}
var admin = &entity.User{ID: 1, Name: "Admin", Surname: "Sistema", Email: "admin@hospital.com", Role: entity.RoleAdmin, Status: entity.StatusActive}

// MockAuthUsecase

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, userID int64, claims *jwt.Claims) error {
	args := m.Called(ctx, userID, claims)
	return args.Error(0)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Get(1).(*jwt.Claims), args.Error(2)
}

// MockUserUsecase

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) AdminUpdateUser(ctx context.Context, actorID, targetID int64, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, actorID, targetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) CreateStaff(ctx context.Context, actorID int64, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StaffResponse), args.Error(1)
}

// MockDoctorUsecase

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) List(ctx context.Context) ([]dto.DoctorResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DoctorResponse), args.Error(1)
}

func (m *MockDoctorUsecase) GetByID(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorResponse), args.Error(1)
}

func (m *MockDoctorUsecase) ListBySpecialty(ctx context.Context, specialtyID int64) ([]dto.DoctorResponse, error) {
	args := m.Called(ctx, specialtyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DoctorResponse), args.Error(1)
}

// MockSpecialtyUsecase

type MockSpecialtyUsecase struct {
	mock.Mock
}

func (m *MockSpecialtyUsecase) List(ctx context.Context) ([]dto.SpecialtyResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SpecialtyResponse), args.Error(1)
}

func (m *MockSpecialtyUsecase) Create(ctx context.Context, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpecialtyResponse), args.Error(1)
}

func (m *MockSpecialtyUsecase) Update(ctx context.Context, id int64, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpecialtyResponse), args.Error(1)
}

func (m *MockSpecialtyUsecase) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAppointmentUsecase

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) ListMine(ctx context.Context, patientID int64) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

func (m *MockAppointmentUsecase) Create(ctx context.Context, patientID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, patientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *MockAppointmentUsecase) Cancel(ctx context.Context, patientID, appointmentID int64) error {
	args := m.Called(ctx, patientID, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) ListAll(ctx context.Context) ([]dto.AppointmentResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

// MockHistoryUsecase

type MockHistoryUsecase struct {
	mock.Mock
}

func (m *MockHistoryUsecase) ListMine(ctx context.Context, patientID int64) ([]dto.HistoryRecordResponse, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.HistoryRecordResponse), args.Error(1)
}

// MockAuditLogUsecase

type MockAuditLogUsecase struct {
	mock.Mock
}

func (m *MockAuditLogUsecase) ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuditLogListResponse), args.Error(1)
}

type stubChecker struct {
	checks map[string]string
	err    error
}

func (s stubChecker) Check(context.Context) (map[string]string, error) {
	return s.checks, s.err
}
