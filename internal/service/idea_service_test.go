package service

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/testutil"
	"engineer_connect_backend/internal/util"
	"errors"
	"sync"
	"testing"
)

func TestIdeaSubmitOncePerProblem(t *testing.T) {
	f := newFixture(t)
	company := testutil.CreateUser(t, f.db, "acme", model.Company)
	student := testutil.CreateUser(t, f.db, "alice", model.Student)
	problem := testutil.CreateProblem(t, f.db, company, model.QuizDefinition{})
	ctx := context.Background()

	idea, err := f.ideas.Submit(ctx, student, IdeaInput{ProblemID: problem.ID, IdeaText: "Use remote caching"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if idea.Student == nil || idea.Student.Password != "" {
		t.Fatalf("student info missing or leaking: %+v", idea.Student)
	}

	_, err = f.ideas.Submit(ctx, student, IdeaInput{ProblemID: problem.ID, IdeaText: "Another"})
	if !errors.Is(err, util.ErrDuplicateSubmission) {
		t.Fatalf("expected duplicate, got %v", err)
	}
}

func TestIdeaSubmitValidation(t *testing.T) {
	f := newFixture(t)
	student := testutil.CreateUser(t, f.db, "alice", model.Student)
	ctx := context.Background()

	if _, err := f.ideas.Submit(ctx, student, IdeaInput{ProblemID: 1}); util.KindOf(err) != util.KindValidationFailed {
		t.Fatalf("empty text: %v", err)
	}
	if _, err := f.ideas.Submit(ctx, student, IdeaInput{ProblemID: 404, IdeaText: "x"}); util.KindOf(err) != util.KindResourceNotFound {
		t.Fatalf("missing problem: %v", err)
	}
}

func TestIdeaSubmitConcurrent(t *testing.T) {
	f := newFixture(t)
	company := testutil.CreateUser(t, f.db, "acme", model.Company)
	student := testutil.CreateUser(t, f.db, "alice", model.Student)
	problem := testutil.CreateProblem(t, f.db, company, model.QuizDefinition{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ideas.Submit(context.Background(), student, IdeaInput{ProblemID: problem.ID, IdeaText: "race"})
		}(i)
	}
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, util.ErrDuplicateSubmission):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != 1 {
		t.Fatalf("ok=%d dup=%d", ok, dup)
	}
}
