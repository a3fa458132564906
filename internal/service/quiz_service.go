package service

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/tracing"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type QuizSubmission struct {
	ProblemID uint                    `json:"problemId"`
	Answers   []model.SubmittedAnswer `json:"answers"`
	TimeSpent int                     `json:"timeSpent"`
}

// QuizOutcome is what the student sees after submitting.
type QuizOutcome struct {
	TotalScore int  `json:"totalScore"`
	MaxScore   int  `json:"maxScore"`
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
	TimeSpent  int  `json:"timeSpent"`
}

type QuizService struct {
	ResponseRepo *repository.QuizResponseRepository
	Problems     *ProblemService
	Ledger       *SubmissionLedger
	now          func() time.Time
}

func NewQuizService(responseRepo *repository.QuizResponseRepository, problems *ProblemService, ledger *SubmissionLedger) *QuizService {
	return &QuizService{
		ResponseRepo: responseRepo,
		Problems:     problems,
		Ledger:       ledger,
		now:          time.Now,
	}
}

// Submit grades and records the student's single quiz attempt for a problem.
func (s *QuizService) Submit(ctx context.Context, student *model.User, in QuizSubmission) (*QuizOutcome, error) {
	if in.ProblemID == 0 {
		return nil, util.Validation("Problem ID is required")
	}
	if in.TimeSpent < 0 {
		in.TimeSpent = 0
	}

	problem, err := s.Problems.Find(ctx, in.ProblemID)
	if util.KindOf(err) == util.KindResourceNotFound {
		return nil, util.ErrQuizNotEnabled
	}
	if err != nil {
		return nil, err
	}
	if !problem.Quiz.Enabled {
		return nil, util.ErrQuizNotEnabled
	}

	exists, err := s.Ledger.HasQuizResponse(ctx, problem.ID, student.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewError(util.KindDuplicateSubmission, "You have already submitted this quiz")
	}

	_, span := tracing.Tracer.Start(ctx, "quiz.Grade")
	result := GradeQuiz(problem.Quiz, in.Answers)
	span.SetAttributes(
		attribute.Int("quiz.questions", len(problem.Quiz.Questions)),
		attribute.Int("quiz.percentage", result.Percentage),
		attribute.Bool("quiz.passed", result.Passed),
	)
	span.End()

	response := &model.QuizResponse{
		ProblemID:   problem.ID,
		StudentID:   student.ID,
		Answers:     result.Answers,
		TotalScore:  result.TotalScore,
		MaxScore:    result.MaxScore,
		Percentage:  result.Percentage,
		Passed:      result.Passed,
		TimeSpent:   in.TimeSpent,
		SubmittedAt: s.now(),
	}
	if err := s.Ledger.RecordQuizResponse(ctx, response); err != nil {
		return nil, err
	}

	return &QuizOutcome{
		TotalScore: result.TotalScore,
		MaxScore:   result.MaxScore,
		Percentage: result.Percentage,
		Passed:     result.Passed,
		TimeSpent:  in.TimeSpent,
	}, nil
}

func (s *QuizService) GetOwn(ctx context.Context, student *model.User, problemID uint) (*model.QuizResponse, error) {
	response, err := s.ResponseRepo.FindByPair(ctx, problemID, student.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("Quiz response not found")
	}
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListForProblem returns every response to problem, best first.
func (s *QuizService) ListForProblem(ctx context.Context, problem *model.Problem) ([]model.QuizResponse, error) {
	return s.ResponseRepo.ListByProblem(ctx, problem.ID)
}

// Retake clears the student's response so exactly one new submission is accepted.
func (s *QuizService) Retake(ctx context.Context, student *model.User, problemID uint) error {
	return s.Ledger.ClearQuizResponse(ctx, problemID, student.ID)
}
