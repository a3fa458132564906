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

const msgDuplicateQuiz = "You have already submitted this quiz"

type QuizResponseRepository struct {
	DB *gorm.DB
}

func NewQuizResponseRepository(db *gorm.DB) *QuizResponseRepository {
	return &QuizResponseRepository{DB: db}
}

// Create inserts response. A unique index violation on (problem, student) is
// reported as util.ErrDuplicateSubmission.
func (r *QuizResponseRepository) Create(ctx context.Context, response *model.QuizResponse) error {
	err := r.DB.WithContext(ctx).Omit("Student").Create(response).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.WrapError(util.KindDuplicateSubmission, msgDuplicateQuiz, err)
	}
	if err != nil {
		return fmt.Errorf("create quiz response: %w", err)
	}
	return nil
}

func (r *QuizResponseRepository) Exists(ctx context.Context, problemID, studentID uint) (bool, error) {
	var count int64
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).Model(&model.QuizResponse{}).
			Where("problem_id = ? AND student_id = ?", problemID, studentID).
			Count(&count).Error
	})
	return count > 0, err
}

func (r *QuizResponseRepository) FindByPair(ctx context.Context, problemID, studentID uint) (*model.QuizResponse, error) {
	var response model.QuizResponse
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).
			Where("problem_id = ? AND student_id = ?", problemID, studentID).
			First(&response).Error
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByProblem returns responses best score first.
func (r *QuizResponseRepository) ListByProblem(ctx context.Context, problemID uint) ([]model.QuizResponse, error) {
	var responses []model.QuizResponse
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).
			Preload("Student").
			Where("problem_id = ?", problemID).
			Order("percentage DESC, submitted_at ASC, id ASC").
			Find(&responses).Error
	})
	return responses, err
}

// DeleteByPair removes the row outright and reports how many were removed.
func (r *QuizResponseRepository) DeleteByPair(ctx context.Context, problemID, studentID uint) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("problem_id = ? AND student_id = ?", problemID, studentID).
		Delete(&model.QuizResponse{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete quiz response: %w", result.Error)
	}
	return result.RowsAffected, nil
}
