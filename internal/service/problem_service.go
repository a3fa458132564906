package service

import (
	"context"
	"encoding/json"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/logger"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TagList accepts either a JSON array or a comma separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = cleanTags(list)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return errors.New("tags must be an array or a comma separated string")
	}
	*t = cleanTags(strings.Split(joined, ","))
	return nil
}

func cleanTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type ProblemInput struct {
	Company     string               `json:"company"`
	Branch      string               `json:"branch"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	VideoURL    string               `json:"videoUrl"`
	Difficulty  string               `json:"difficulty"`
	Tags        TagList              `json:"tags" swaggertype:"array,string"`
	Attachments []model.Attachment   `json:"attachments"`
	Quiz        model.QuizDefinition `json:"quiz"`
}

func (in ProblemInput) validate() error {
	if strings.TrimSpace(in.Company) == "" || in.Branch == "" || strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" || in.Difficulty == "" {
		return util.Validation("Please provide all required fields")
	}
	if !model.ValidBranch(in.Branch) {
		return util.Validation("Invalid branch: " + in.Branch)
	}
	if !model.ValidDifficulty(in.Difficulty) {
		return util.Validation("Invalid difficulty: " + in.Difficulty)
	}
	if err := in.Quiz.Validate(); err != nil {
		return util.Validation(err.Error())
	}
	return nil
}

func (in ProblemInput) applyTo(p *model.Problem) {
	p.Company = strings.TrimSpace(in.Company)
	p.Branch = in.Branch
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.VideoURL = in.VideoURL
	p.Difficulty = in.Difficulty
	p.Tags = []string(in.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.Attachments = in.Attachments
	if p.Attachments == nil {
		p.Attachments = []model.Attachment{}
	}
	p.Quiz = in.Quiz.Normalize(p.Title)
}

type ProblemService struct {
	ProblemRepo *repository.ProblemRepository
	Views       *repository.ViewCounter
}

func NewProblemService(problemRepo *repository.ProblemRepository, views *repository.ViewCounter) *ProblemService {
	return &ProblemService{ProblemRepo: problemRepo, Views: views}
}

// List returns problems newest first with quiz answer keys removed.
func (s *ProblemService) List(ctx context.Context, branch string) ([]model.Problem, error) {
	if branch != "" && !model.ValidBranch(branch) {
		return nil, util.Validation("Invalid branch: " + branch)
	}
	problems, err := s.ProblemRepo.List(ctx, branch)
	if err != nil {
		return nil, err
	}
	for i := range problems {
		problems[i] = problems[i].ForStudents()
	}
	return problems, nil
}

// Get loads a problem for public display and counts the view. A failed view
// count does not fail the read.
func (s *ProblemService) Get(ctx context.Context, id uint) (*model.Problem, error) {
	problem, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Views.Record(ctx, problem); err != nil {
		logger.Log.Warn("Failed to record problem view", zap.Uint("problemID", id), zap.Error(err))
	}
	redacted := problem.ForStudents()
	return &redacted, nil
}

// Find loads a problem with its full quiz, mapping a missing row to ResourceNotFound.
func (s *ProblemService) Find(ctx context.Context, id uint) (*model.Problem, error) {
	problem, err := s.ProblemRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("Problem not found")
	}
	if err != nil {
		return nil, err
	}
	return problem, nil
}

func (s *ProblemService) Create(ctx context.Context, owner *model.User, in ProblemInput) (*model.Problem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	problem := &model.Problem{OwnerID: owner.ID}
	in.applyTo(problem)
	if err := s.ProblemRepo.Create(ctx, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

// Update overwrites the editable fields of an already authorized problem.
func (s *ProblemService) Update(ctx context.Context, problem *model.Problem, in ProblemInput) (*model.Problem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	in.applyTo(problem)
	if err := s.ProblemRepo.Update(ctx, problem); err != nil {
		return nil, err
	}
	return problem, nil
}

func (s *ProblemService) Delete(ctx context.Context, problem *model.Problem) error {
	return s.ProblemRepo.Delete(ctx, problem.ID)
}
