package repository

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/pkg/database"
	"fmt"

	"gorm.io/gorm"
)

type ProblemRepository struct {
	DB *gorm.DB
}

func NewProblemRepository(db *gorm.DB) *ProblemRepository {
	return &ProblemRepository{DB: db}
}

// List returns problems newest first, filtered by branch when non-empty.
func (r *ProblemRepository) List(ctx context.Context, branch string) ([]model.Problem, error) {
	var problems []model.Problem
	err := database.RetryRead(ctx, func() error {
		query := r.DB.WithContext(ctx).Order("created_at DESC, id DESC")
		if branch != "" {
			query = query.Where("branch = ?", branch)
		}
		return query.Find(&problems).Error
	})
	return problems, err
}

func (r *ProblemRepository) FindByID(ctx context.Context, id uint) (*model.Problem, error) {
	var problem model.Problem
	err := database.RetryRead(ctx, func() error {
		return r.DB.WithContext(ctx).First(&problem, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &problem, nil
}

func (r *ProblemRepository) Create(ctx context.Context, problem *model.Problem) error {
	if err := r.DB.WithContext(ctx).Create(problem).Error; err != nil {
		return fmt.Errorf("create problem: %w", err)
	}
	return nil
}

func (r *ProblemRepository) Update(ctx context.Context, problem *model.Problem) error {
	if err := r.DB.WithContext(ctx).Save(problem).Error; err != nil {
		return fmt.Errorf("update problem %d: %w", problem.ID, err)
	}
	return nil
}

func (r *ProblemRepository) Delete(ctx context.Context, id uint) error {
	if err := r.DB.WithContext(ctx).Delete(&model.Problem{}, id).Error; err != nil {
		return fmt.Errorf("delete problem %d: %w", id, err)
	}
	return nil
}

// AddViews applies a view delta in a single UPDATE.
func (r *ProblemRepository) AddViews(ctx context.Context, id uint, delta int64) error {
	return r.DB.WithContext(ctx).
		Model(&model.Problem{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).
		Error
}
