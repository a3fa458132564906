package service

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/monitoring"
	"engineer_connect_backend/pkg/tracing"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SubmissionLedger records at most one idea per (student, problem) and at most
// one quiz response per (problem, student). The Has* checks are advisory only;
// the unique indexes behind Record* are what keep the pairs unique.
type SubmissionLedger struct {
	ideas     *repository.IdeaRepository
	responses *repository.QuizResponseRepository
}

func NewSubmissionLedger(ideas *repository.IdeaRepository, responses *repository.QuizResponseRepository) *SubmissionLedger {
	return &SubmissionLedger{ideas: ideas, responses: responses}
}

func (l *SubmissionLedger) HasIdea(ctx context.Context, studentID, problemID uint) (bool, error) {
	return l.ideas.Exists(ctx, studentID, problemID)
}

func (l *SubmissionLedger) HasQuizResponse(ctx context.Context, problemID, studentID uint) (bool, error) {
	return l.responses.Exists(ctx, problemID, studentID)
}

func (l *SubmissionLedger) RecordIdea(ctx context.Context, idea *model.Idea) error {
	ctx, span := tracing.Tracer.Start(ctx, "ledger.RecordIdea")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("student.id", int64(idea.StudentID)),
		attribute.Int64("problem.id", int64(idea.ProblemID)),
	)

	err := l.ideas.Create(ctx, idea)
	observe(span, "idea", err)
	return err
}

func (l *SubmissionLedger) RecordQuizResponse(ctx context.Context, response *model.QuizResponse) error {
	ctx, span := tracing.Tracer.Start(ctx, "ledger.RecordQuizResponse")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("student.id", int64(response.StudentID)),
		attribute.Int64("problem.id", int64(response.ProblemID)),
	)

	err := l.responses.Create(ctx, response)
	observe(span, "quiz", err)
	return err
}

// ClearQuizResponse deletes the student's response so the quiz can be retaken.
func (l *SubmissionLedger) ClearQuizResponse(ctx context.Context, problemID, studentID uint) error {
	removed, err := l.responses.DeleteByPair(ctx, problemID, studentID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return util.NotFoundError("Quiz response not found")
	}
	return nil
}

func observe(span trace.Span, kind string, err error) {
	switch {
	case err == nil:
		monitoring.Submissions.WithLabelValues(kind, "recorded").Inc()
	case errors.Is(err, util.ErrDuplicateSubmission):
		monitoring.Submissions.WithLabelValues(kind, "duplicate").Inc()
	default:
		monitoring.Submissions.WithLabelValues(kind, "failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
