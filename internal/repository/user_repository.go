package repository

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/database"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts user; a taken username surfaces as util.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.WrapError(util.KindValidationFailed, util.ErrUserExists.Message, err)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	})
	return count > 0, err
}
