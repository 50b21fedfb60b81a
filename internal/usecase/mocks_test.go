package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, sqlMock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// MockUserRepository

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	args := m.Called(ctx, db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(ctx, db, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrNationalID(ctx context.Context, db *gorm.DB, email, nationalID string) (bool, error) {
	args := m.Called(ctx, db, email, nationalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailExcept(ctx context.Context, db *gorm.DB, email string, exceptID int64) (bool, error) {
	args := m.Called(ctx, db, email, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	args := m.Called(ctx, db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateColumns(ctx context.Context, db *gorm.DB, id int64, columns map[string]interface{}) (int64, error) {
	args := m.Called(ctx, db, id, columns)
	return args.Get(0).(int64), args.Error(1)
}

// MockSpecialtyRepository

type MockSpecialtyRepository struct {
	mock.Mock
}

func (m *MockSpecialtyRepository) FindActive(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error) {
	args := m.Called(ctx, db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Specialty), args.Error(1)
}

func (m *MockSpecialtyRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Specialty, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Specialty), args.Error(1)
}

func (m *MockSpecialtyRepository) Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	args := m.Called(ctx, db, specialty)
	return args.Error(0)
}

func (m *MockSpecialtyRepository) Update(ctx context.Context, db *gorm.DB, id int64, name, description string) (int64, error) {
	args := m.Called(ctx, db, id, name, description)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSpecialtyRepository) Deactivate(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockDoctorRepository

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	args := m.Called(ctx, db, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	args := m.Called(ctx, db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindActiveBySpecialty(ctx context.Context, db *gorm.DB, specialtyID int64) ([]entity.Doctor, error) {
	args := m.Called(ctx, db, specialtyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Doctor), args.Error(1)
}

// MockAppointmentRepository

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(ctx, db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	args := m.Called(ctx, db, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error) {
	args := m.Called(ctx, db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) SlotTaken(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, clock string) (bool, error) {
	args := m.Called(ctx, db, doctorID, date, clock)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) CancelOwned(ctx context.Context, db *gorm.DB, id, patientID int64) (int64, error) {
	args := m.Called(ctx, db, id, patientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepository

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, db *gorm.DB, record *entity.HistoryRecord) error {
	args := m.Called(ctx, db, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.HistoryRecord, error) {
	args := m.Called(ctx, db, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.HistoryRecord), args.Error(1)
}

// MockAuditLogRepository

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	args := m.Called(ctx, db, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	args := m.Called(ctx, db, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuditLog), args.Error(1)
}

// MockTokenRepository

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockAuditService

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *int64, action string, metadata map[string]interface{}) error {
	args := m.Called(ctx, tx, userID, action, metadata)
	return args.Error(0)
}

// MockDirectoryCache records calls and always runs the loader, like a cold cache.

type MockDirectoryCache struct {
	mock.Mock
}

func (m *MockDirectoryCache) Fetch(ctx context.Context, key string, dest interface{}, load service.LoadFunc) error {
	m.Called(ctx, key)
	value, err := load(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (m *MockDirectoryCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
