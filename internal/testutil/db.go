// Package testutil provides an in-process SQLite store for package tests.
package testutil

import (
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/pkg/database"
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// NewDB opens a fresh migrated in-memory database. A single connection keeps
// every goroutine on the same memory database and serializes writes, so the
// unique indexes decide concurrent inserts deterministically.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &model.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
		Name:     username,
	}
	switch role {
	case model.Student:
		user.University = "State University"
	case model.Company:
		user.CompanyName = username + " Inc"
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// CreateProblem inserts a problem owned by owner, optionally carrying quiz.
func CreateProblem(t *testing.T, db *gorm.DB, owner *model.User, quiz model.QuizDefinition) *model.Problem {
	t.Helper()

	problem := &model.Problem{
		OwnerID:     owner.ID,
		Company:     owner.CompanyName,
		Branch:      "computer",
		Title:       "Reduce build times",
		Description: "Our CI pipeline takes 40 minutes.",
		Difficulty:  "intermediate",
		Tags:        []string{"ci"},
		Attachments: []model.Attachment{},
		Quiz:        quiz,
	}
	if err := db.Create(problem).Error; err != nil {
		t.Fatalf("create problem: %v", err)
	}
	return problem
}
