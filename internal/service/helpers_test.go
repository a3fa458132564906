package service

import (
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/testutil"
	"engineer_connect_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	auth     *AuthService
	problems *ProblemService
	ideas    *IdeaService
	quizzes  *QuizService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: 24 * time.Hour}}
	userRepo := repository.NewUserRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	responseRepo := repository.NewQuizResponseRepository(db)

	problems := NewProblemService(problemRepo, repository.NewViewCounter(nil, problemRepo))
	ledger := NewSubmissionLedger(ideaRepo, responseRepo)

	return &fixture{
		db:       db,
		auth:     NewAuthService(userRepo, util.NewTokenService(cfg.JWT.Secret), cfg),
		problems: problems,
		ideas:    NewIdeaService(ideaRepo, problems, ledger),
		quizzes:  NewQuizService(responseRepo, problems, ledger),
	}
}
