package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"
	"medical-appointments-api/pkg/optional"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already in use by another user")
	ErrNothingToUpdate       = errors.New("no fields to update")
	ErrInvalidRole           = errors.New("role must be admin or doctor")
	ErrDoctorDetailsRequired = errors.New("specialty and license number are required for doctors")
	ErrLicenseAlreadyExists  = errors.New("license number already exists")
	ErrInvalidShift          = errors.New("shift start must be before shift end")
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	AdminUpdateUser(ctx context.Context, actorID, targetID int64, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	CreateStaff(ctx context.Context, actorID int64, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
}

type userUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	doctorRepo     repository.DoctorRepository
	specialtyRepo  repository.SpecialtyRepository
	auditService   service.AuditService
	directoryCache service.DirectoryCache
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
	directoryCache service.DirectoryCache,
) UserUsecase {
	return &userUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		doctorRepo:     doctorRepo,
		specialtyRepo:  specialtyRepo,
		auditService:   auditService,
		directoryCache: directoryCache,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	columns, err := profileColumns(req)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return u.GetProfile(ctx, userID)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.userRepo.UpdateColumns(ctx, tx, userID, columns)
	if err != nil {
		u.log.Warnf("Failed to update profile: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to reload user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "user", userID, nil, changedFields(columns)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// The doctor directory shows the owning user's name.
	if user.Role.IsDoctor() && (hasColumn(columns, "name") || hasColumn(columns, "surname")) {
		u.directoryCache.Invalidate(ctx)
	}

	return converter.UserToResponse(user), nil
}

func hasColumn(columns map[string]interface{}, column string) bool {
	_, ok := columns[column]
	return ok
}

// profileColumns turns the patch into the column set to write. Absent fields are left
// out; null clears the nullable fields. Name and surname cannot be cleared.
func profileColumns(req *dto.UpdateProfileRequest) (map[string]interface{}, error) {
	columns := make(map[string]interface{})

	if req.Name.HasValue() {
		columns["name"] = strings.TrimSpace(req.Name.Value)
	}
	if req.Surname.HasValue() {
		columns["surname"] = strings.TrimSpace(req.Surname.Value)
	}

	setNullable(columns, "phone", req.Phone)
	setNullable(columns, "address", req.Address)
	setNullable(columns, "insurance_name", req.InsuranceName)
	setNullable(columns, "insurance_number", req.InsuranceNumber)

	if req.BirthDate.Set {
		if req.BirthDate.Null || strings.TrimSpace(req.BirthDate.Value) == "" {
			columns["birth_date"] = nil
		} else {
			birthDate, err := time.Parse(dateLayout, strings.TrimSpace(req.BirthDate.Value))
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			columns["birth_date"] = birthDate
		}
	}

	return columns, nil
}

func setNullable(columns map[string]interface{}, column string, field optional.Optional[string]) {
	if !field.Set {
		return
	}
	if value := nonEmpty(field.Value); value != nil && !field.Null {
		columns[column] = *value
		return
	}
	columns[column] = nil
}

func changedFields(columns map[string]interface{}) []string {
	fields := make([]string, 0, len(columns))
	for column := range columns {
		fields = append(fields, column)
	}
	return fields
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}
	return converter.UsersToResponses(users), nil
}

func (u *userUsecase) AdminUpdateUser(ctx context.Context, actorID, targetID int64, req *dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	if req.Email == nil && req.Status == nil {
		return nil, ErrNothingToUpdate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	target, err := u.userRepo.FindByID(ctx, tx, targetID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	columns := make(map[string]interface{})
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		taken, err := u.userRepo.ExistsByEmailExcept(ctx, tx, email, targetID)
		if err != nil {
			u.log.Warnf("Failed to check email: %+v", err)
			return nil, err
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
		columns["email"] = email
	}
	if req.Status != nil {
		columns["status"] = entity.Status(*req.Status)
	}

	if _, err := u.userRepo.UpdateColumns(ctx, tx, targetID, columns); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	updated, err := u.userRepo.FindByID(ctx, tx, targetID)
	if err != nil {
		u.log.Warnf("Failed to reload user: %+v", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	oldValue := map[string]interface{}{"email": target.Email, "status": target.Status}
	newValue := map[string]interface{}{"email": updated.Email, "status": updated.Status}
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionUserAdminUpdate, "user", targetID, oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if updated.Role.IsDoctor() && updated.Status != target.Status {
		u.directoryCache.Invalidate(ctx)
	}

	return converter.UserToResponse(updated), nil
}

func (u *userUsecase) CreateStaff(ctx context.Context, actorID int64, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	role := entity.Role(req.Role)
	if !role.CanBeCreatedByAdmin() {
		return nil, ErrInvalidRole
	}

	email := normalizeEmail(req.Email)
	nationalID := strings.TrimSpace(req.NationalID)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.userRepo.ExistsByEmailOrNationalID(ctx, tx, email, nationalID)
	if err != nil {
		u.log.Warnf("Failed to check existing user: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:       strings.TrimSpace(req.Name),
		Surname:    strings.TrimSpace(req.Surname),
		Email:      email,
		Password:   string(hashedPassword),
		Phone:      nonEmpty(req.Phone),
		NationalID: nationalID,
		Role:       role,
		Status:     entity.StatusActive,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") || isDuplicateKeyError(err, "national_id") {
			return nil, ErrUserAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	response := &dto.StaffResponse{User: *converter.UserToResponse(user)}

	// Returning before Commit rolls the user back, so no doctor-role user is left without a doctor row.
	if role.IsDoctor() {
		doctor, err := u.createDoctor(ctx, tx, user, req)
		if err != nil {
			return nil, err
		}
		response.Doctor = converter.DoctorToResponse(doctor)
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionStaffCreate, "user", user.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if role.IsDoctor() {
		u.directoryCache.Invalidate(ctx)
	}

	return response, nil
}

func (u *userUsecase) createDoctor(ctx context.Context, tx *gorm.DB, user *entity.User, req *dto.CreateStaffRequest) (*entity.Doctor, error) {
	license := strings.TrimSpace(req.LicenseNumber)
	if req.SpecialtyID == nil || license == "" {
		return nil, ErrDoctorDetailsRequired
	}

	specialty, err := u.specialtyRepo.FindByID(ctx, tx, *req.SpecialtyID)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if specialty == nil || specialty.Status != entity.StatusActive {
		return nil, ErrSpecialtyNotFound
	}

	shiftStart, shiftEnd := entity.DefaultShiftStart, entity.DefaultShiftEnd
	if req.ShiftStart != "" {
		var ok bool
		if shiftStart, ok = normalizeClock(req.ShiftStart); !ok {
			return nil, ErrInvalidTimeFormat
		}
	}
	if req.ShiftEnd != "" {
		var ok bool
		if shiftEnd, ok = normalizeClock(req.ShiftEnd); !ok {
			return nil, ErrInvalidTimeFormat
		}
	}
	if shiftStart >= shiftEnd {
		return nil, ErrInvalidShift
	}

	days := req.AttendanceDays
	if len(days) == 0 {
		days = entity.DefaultAttendanceDays
	}

	doctor := &entity.Doctor{
		UserID:         user.ID,
		SpecialtyID:    specialty.ID,
		LicenseNumber:  license,
		ShiftStart:     shiftStart,
		ShiftEnd:       shiftEnd,
		AttendanceDays: datatypes.JSONSlice[string](days),
		Status:         entity.StatusActive,
	}

	if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
		if isDuplicateKeyError(err, "license") {
			return nil, ErrLicenseAlreadyExists
		}
		if isForeignKeyError(err, "specialty") {
			return nil, ErrSpecialtyNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	doctor.User = *user
	doctor.Specialty = *specialty
	return doctor, nil
}
