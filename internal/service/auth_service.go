package service

import (
	"context"
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/util"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 3

type RegisterInput struct {
	Username    string         `json:"username" binding:"required"`
	Password    string         `json:"password" binding:"required"`
	Role        model.UserRole `json:"role"`
	University  string         `json:"university"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	CompanyName string         `json:"companyName"`
}

// AuthResult pairs a freshly issued token with the public view of its user.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Tokens   *util.TokenService
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokens *util.TokenService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, util.Validation("Username and password are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, util.Validation("Password must be at least 3 characters")
	}
	if in.Role == "" {
		in.Role = model.Student
	}
	if !in.Role.Valid() {
		return nil, util.Validation("Invalid role")
	}
	if in.Role == model.Student && strings.TrimSpace(in.University) == "" {
		return nil, util.Validation("University is required for students")
	}

	exists, err := s.UserRepo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    in.Username,
		Password:    string(hashedPassword),
		Role:        in.Role,
		Name:        in.Name,
		Email:       in.Email,
		CompanyName: in.CompanyName,
	}
	if in.Role == model.Student {
		user.University = in.University
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login never reveals whether the username or the password was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.UserRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrBadLogin
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrBadLogin
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.Tokens.Issue(user.ID, user.Role, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
