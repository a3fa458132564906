package service

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type IdeaInput struct {
	ProblemID              uint   `json:"problemId"`
	IdeaText               string `json:"ideaText"`
	ImplementationApproach string `json:"implementationApproach"`
}

type IdeaService struct {
	IdeaRepo *repository.IdeaRepository
	Problems *ProblemService
	Ledger   *SubmissionLedger
}

func NewIdeaService(ideaRepo *repository.IdeaRepository, problems *ProblemService, ledger *SubmissionLedger) *IdeaService {
	return &IdeaService{IdeaRepo: ideaRepo, Problems: problems, Ledger: ledger}
}

// Submit records the student's single idea for a problem.
func (s *IdeaService) Submit(ctx context.Context, student *model.User, in IdeaInput) (*model.Idea, error) {
	if in.ProblemID == 0 || strings.TrimSpace(in.IdeaText) == "" {
		return nil, util.Validation("Problem ID and idea text are required")
	}

	problem, err := s.Problems.Find(ctx, in.ProblemID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Ledger.HasIdea(ctx, student.ID, problem.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewError(util.KindDuplicateSubmission, "You have already submitted an idea for this problem.")
	}

	idea := &model.Idea{
		StudentID:              student.ID,
		ProblemID:              problem.ID,
		IdeaText:               in.IdeaText,
		ImplementationApproach: in.ImplementationApproach,
	}
	if err := s.Ledger.RecordIdea(ctx, idea); err != nil {
		return nil, err
	}

	idea.Student = student.Public()
	redacted := problem.ForStudents()
	idea.Problem = &redacted
	return idea, nil
}

func (s *IdeaService) ListAll(ctx context.Context) ([]model.Idea, error) {
	return s.IdeaRepo.ListAll(ctx)
}

func (s *IdeaService) ListByProblem(ctx context.Context, problem *model.Problem) ([]model.Idea, error) {
	return s.IdeaRepo.ListByProblem(ctx, problem.ID)
}

func (s *IdeaService) Get(ctx context.Context, id uint) (*model.Idea, error) {
	idea, err := s.IdeaRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("Idea not found")
	}
	if err != nil {
		return nil, err
	}
	return idea, nil
}
