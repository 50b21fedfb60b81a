package repository

import (
	"context"
	"errors"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("id = ? AND status = ?", id, entity.StatusActive))
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("email = ? AND status = ?", email, entity.StatusActive))
}

func (r *userRepository) ExistsByEmailOrNationalID(ctx context.Context, db *gorm.DB, email, nationalID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ? OR national_id = ?", email, nationalID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByEmailExcept(ctx context.Context, db *gorm.DB, email string, exceptID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.User{}).
		Where("email = ? AND id <> ?", email, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateColumns(ctx context.Context, db *gorm.DB, id int64, columns map[string]interface{}) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(columns)
	return result.RowsAffected, result.Error
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
