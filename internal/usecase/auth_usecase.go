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
	"medical-appointments-api/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists  = errors.New("a user with this email or DNI already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userID int64, claims *jwt.Claims) error
	// Authenticate resolves a bearer token to an active user.
	Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		auditService: auditService,
		jwtService:   jwtService,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		birthDate = &parsed
	}

	email := normalizeEmail(req.Email)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	exists, err := u.userRepo.ExistsByEmailOrNationalID(ctx, tx, email, strings.TrimSpace(req.NationalID))
	if err != nil {
		u.log.Warnf("Failed to check existing user: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:            strings.TrimSpace(req.Name),
		Surname:         strings.TrimSpace(req.Surname),
		Email:           email,
		Password:        string(hashedPassword),
		Phone:           nonEmpty(req.Phone),
		Address:         nonEmpty(req.Address),
		BirthDate:       birthDate,
		NationalID:      strings.TrimSpace(req.NationalID),
		InsuranceName:   nonEmpty(req.InsuranceName),
		InsuranceNumber: nonEmpty(req.InsuranceNumber),
		Role:            entity.RolePatient,
		Status:          entity.StatusActive,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") || isDuplicateKeyError(err, "national_id") {
			return nil, ErrUserAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, converter.UserToIdentity(user)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.issueToken(user)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// Read-only, no transaction needed
	user, err := u.userRepo.FindActiveByEmail(ctx, u.db, normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Audit failures do not fail the login.
	if err := u.auditService.LogEvent(ctx, u.db, &user.ID, entity.AuditActionUserLogin, nil); err != nil {
		u.log.Warnf("Failed to record login for user %d: %+v", user.ID, err)
	}

	return u.issueToken(user)
}

func (u *authUsecase) Logout(ctx context.Context, userID int64, claims *jwt.Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := u.tokenRepo.Revoke(ctx, claims.TokenID(), ttl); err != nil {
		u.log.Warnf("Failed to revoke token: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, u.db, &userID, entity.AuditActionUserLogout, nil); err != nil {
		u.log.Warnf("Failed to record logout for user %d: %+v", userID, err)
	}

	return nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	// An unreachable revocation store does not lock everyone out; the
	// signature and the user row still gate the request.
	revoked, err := u.tokenRepo.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		u.log.Warnf("Failed to check token revocation, continuing: %+v", err)
	}
	if revoked {
		return nil, nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindActiveByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	return user, claims, nil
}

func (u *authUsecase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, _, err := u.jwtService.GenerateToken(user.ID)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetExpiry().Seconds()),
		User:      *converter.UserToResponse(user),
	}, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
