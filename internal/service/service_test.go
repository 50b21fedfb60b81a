package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeletePrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	args := m.Called(ctx, db, log)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	args := m.Called(ctx, db, limit)
	return args.Get(0).([]entity.AuditLog), args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type listing struct {
	Names []string `json:"names"`
}

func TestDirectoryCache_HitSkipsLoad(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCacheRepository)
	repo.On("Get", ctx, DoctorListKey).Return([]byte(`{"names":["Ana"]}`), nil)

	cache := NewDirectoryCache(repo, time.Minute, quietLogger())

	var got listing
	err := cache.Fetch(ctx, DoctorListKey, &got, func(context.Context) (interface{}, error) {
		t.Fatal("load must not run on a cache hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, got.Names)
	repo.AssertExpectations(t)
}

func TestDirectoryCache_MissLoadsAndStores(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCacheRepository)
	repo.On("Get", ctx, SpecialtyListKey).Return(nil, repository.ErrCacheMiss)
	repo.On("Set", mock.Anything, SpecialtyListKey, []byte(`{"names":["Cardiología"]}`), 5*time.Minute).Return(nil)

	cache := NewDirectoryCache(repo, 5*time.Minute, quietLogger())

	var got listing
	err := cache.Fetch(ctx, SpecialtyListKey, &got, func(context.Context) (interface{}, error) {
		return listing{Names: []string{"Cardiología"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiología"}, got.Names)
	repo.AssertExpectations(t)
}

func TestDirectoryCache_BackendFailureIsBypassed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCacheRepository)
	repo.On("Get", ctx, DoctorKey(3)).Return(nil, errors.New("connection refused"))
	repo.On("Set", mock.Anything, DoctorKey(3), mock.Anything, time.Minute).Return(errors.New("connection refused"))

	cache := NewDirectoryCache(repo, time.Minute, quietLogger())

	var got listing
	err := cache.Fetch(ctx, DoctorKey(3), &got, func(context.Context) (interface{}, error) {
		return listing{Names: []string{"Carlos"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carlos"}, got.Names)
}

func TestDirectoryCache_LoadErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCacheRepository)
	repo.On("Get", ctx, DoctorKey(9)).Return(nil, repository.ErrCacheMiss)

	cache := NewDirectoryCache(repo, time.Minute, quietLogger())
	notFound := errors.New("doctor not found")

	var got listing
	err := cache.Fetch(ctx, DoctorKey(9), &got, func(context.Context) (interface{}, error) {
		return nil, notFound
	})
	assert.ErrorIs(t, err, notFound)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDirectoryCache_InvalidateClearsPrefix(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCacheRepository)
	repo.On("DeletePrefix", ctx, "directory:").Return(nil)

	NewDirectoryCache(repo, time.Minute, quietLogger()).Invalidate(ctx)
	repo.AssertExpectations(t)
}

func TestDirectoryCache_LoadOverlappingInvalidateIsNotStored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCacheRepository)
	repo.On("Get", mock.Anything, SpecialtyListKey).Return(nil, repository.ErrCacheMiss)
	repo.On("DeletePrefix", mock.Anything, "directory:").Return(nil)

	cache := NewDirectoryCache(repo, time.Minute, quietLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	var stale listing
	go func() {
		done <- cache.Fetch(ctx, SpecialtyListKey, &stale, func(context.Context) (interface{}, error) {
			close(started)
			<-release
			return listing{Names: []string{"Cardiología", "Pediatría"}}, nil
		})
	}()

	<-started
	cache.Invalidate(ctx)
	close(release)
	require.NoError(t, <-done)

	// The in-flight caller still gets its answer, but it must not be cached.
	assert.Equal(t, []string{"Cardiología", "Pediatría"}, stale.Names)
	repo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	repo.On("Set", mock.Anything, SpecialtyListKey, []byte(`{"names":["Cardiología"]}`), time.Minute).Return(nil)

	var fresh listing
	err := cache.Fetch(ctx, SpecialtyListKey, &fresh, func(context.Context) (interface{}, error) {
		return listing{Names: []string{"Cardiología"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiología"}, fresh.Names)
	repo.AssertExpectations(t)
}

func TestDirectoryCache_LoadOutlivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := new(MockCacheRepository)
	repo.On("Get", mock.Anything, DoctorListKey).Return(nil, repository.ErrCacheMiss)
	repo.On("Set", mock.Anything, DoctorListKey, mock.Anything, time.Minute).Return(nil)

	cache := NewDirectoryCache(repo, time.Minute, quietLogger())

	var got listing
	err := cache.Fetch(ctx, DoctorListKey, &got, func(loadCtx context.Context) (interface{}, error) {
		if err := loadCtx.Err(); err != nil {
			return nil, err
		}
		return listing{Names: []string{"Ana"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, got.Names)
}

func TestDirectoryKeys(t *testing.T) {
	assert.Equal(t, "directory:doctors:3", DoctorKey(3))
	assert.Equal(t, "directory:specialties:2:doctors", SpecialtyDoctorsKey(2))
}

func TestAuditService_LogUpdate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditLogRepository)
	actor := int64(1)

	repo.On("Create", ctx, (*gorm.DB)(nil), mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditActionSpecialtyUpdate &&
			*log.UserID == actor &&
			log.Metadata["entity"] == "specialty" &&
			log.Metadata["entity_id"] == "5"
	})).Return(nil)

	svc := NewAuditService(quietLogger(), repo)
	err := svc.LogUpdate(ctx, nil, &actor, entity.AuditActionSpecialtyUpdate, "specialty", 5, "old", "new")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuditService_PropagatesFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditLogRepository)
	repo.On("Create", ctx, (*gorm.DB)(nil), mock.Anything).Return(errors.New("insert failed"))

	svc := NewAuditService(quietLogger(), repo)
	err := svc.LogEvent(ctx, nil, nil, entity.AuditActionUserLogin, map[string]interface{}{"email": "a@x.com"})
	assert.EqualError(t, err, "insert failed")
}

func TestHealthChecker_AllUp(t *testing.T) {
	checker := NewHealthChecker(map[string]PingFunc{
		"database": func(context.Context) error { return nil },
		"cache":    func(context.Context) error { return nil },
	})

	statuses, err := checker.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"database": StatusUp, "cache": StatusUp}, statuses)
}

func TestHealthChecker_ReportsEachDependency(t *testing.T) {
	var calls atomic.Int32
	checker := NewHealthChecker(map[string]PingFunc{
		"database": func(context.Context) error { calls.Add(1); return nil },
		"cache":    func(context.Context) error { calls.Add(1); return errors.New("dial tcp: refused") },
	})

	statuses, err := checker.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache")
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, StatusUp, statuses["database"])
	assert.Equal(t, StatusDown, statuses["cache"])
}
