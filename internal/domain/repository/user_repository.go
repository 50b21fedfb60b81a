package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error)
	FindActiveByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error)
	FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	ExistsByEmailOrNationalID(ctx context.Context, db *gorm.DB, email, nationalID string) (bool, error)
	ExistsByEmailExcept(ctx context.Context, db *gorm.DB, email string, exceptID int64) (bool, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error)
	// UpdateColumns writes only the given columns and reports the affected row count.
	UpdateColumns(ctx context.Context, db *gorm.DB, id int64, columns map[string]interface{}) (int64, error)
}
