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

const msgDuplicateIdea = "You have already submitted an idea for this problem."

type IdeaRepository struct {
	DB *gorm.DB
}

func NewIdeaRepository(db *gorm.DB) *IdeaRepository {
	return &IdeaRepository{DB: db}
}

// Create inserts idea. A unique index violation on (student, problem) is
// reported as util.ErrDuplicateSubmission.
func (r *IdeaRepository) Create(ctx context.Context, idea *model.Idea) error {
	err := r.DB.WithContext(ctx).Omit("Student", "Problem").Create(idea).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.WrapError(util.KindDuplicateSubmission, msgDuplicateIdea, err)
	}
	if err != nil {
		return fmt.Errorf("create idea: %w", err)
	}
	return nil
}

func (r *IdeaRepository) Exists(ctx context.Context, studentID, problemID uint) (bool, error) {
	var count int64
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).Model(&model.Idea{}).
			Where("student_id = ? AND problem_id = ?", studentID, problemID).
			Count(&count).Error
	})
	return count > 0, err
}

func (r *IdeaRepository) FindByID(ctx context.Context, id uint) (*model.Idea, error) {
	var idea model.Idea
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).
			Preload("Student").
			Preload("Problem").
			First(&idea, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

func (r *IdeaRepository) ListAll(ctx context.Context) ([]model.Idea, error) {
	var ideas []model.Idea
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).
			Preload("Student").
			Preload("Problem").
			Order("created_at DESC, id DESC").
			Find(&ideas).Error
	})
	return ideas, err
}

func (r *IdeaRepository) ListByProblem(ctx context.Context, problemID uint) ([]model.Idea, error) {
	var ideas []model.Idea
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).
			Preload("Student").
			Where("problem_id = ?", problemID).
			Order("created_at DESC, id DESC").
			Find(&ideas).Error
	})
	return ideas, err
}
