package repository

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/testutil"
	"testing"
)

func TestProblemListFiltersByBranch(t *testing.T) {
	db := testutil.NewDB(t)
	company := testutil.CreateUser(t, db, "acme", model.Company)
	first := testutil.CreateProblem(t, db, company, model.QuizDefinition{})
	second := testutil.CreateProblem(t, db, company, model.QuizDefinition{})
	second.Branch = "civil"
	if err := db.Save(second).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	repo := NewProblemRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	civil, err := repo.List(ctx, "civil")
	if err != nil {
		t.Fatalf("list civil: %v", err)
	}
	if len(civil) != 1 || civil[0].ID != second.ID {
		t.Fatalf("branch filter returned %+v", civil)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, first.ID); err == nil {
		t.Fatal("deleted problem still found")
	}
}

func TestViewCounterWithoutRedis(t *testing.T) {
	db := testutil.NewDB(t)
	company := testutil.CreateUser(t, db, "acme", model.Company)
	problem := testutil.CreateProblem(t, db, company, model.QuizDefinition{})
	problems := NewProblemRepository(db)
	counter := NewViewCounter(nil, problems)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := counter.Record(ctx, problem); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if problem.Views != 3 {
		t.Fatalf("in-memory views = %d", problem.Views)
	}

	stored, err := problems.FindByID(ctx, problem.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Views != 3 {
		t.Fatalf("stored views = %d, want 3", stored.Views)
	}
	if err := counter.Flush(ctx); err != nil {
		t.Fatalf("flush without redis: %v", err)
	}
}
