package model

import (
	"errors"
	"fmt"
	"strings"
)

type QuestionType string

const (
	MultipleChoice  QuestionType = "multiple-choice"
	TextQuestion    QuestionType = "text"
	BooleanQuestion QuestionType = "boolean"
)

const (
	DefaultQuizTimeLimit    = 30
	DefaultQuizPassingScore = 70
	DefaultQuestionPoints   = 1
)

type QuizOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuizQuestion is a tagged variant keyed by Type. Options is only meaningful
// for multiple-choice, CorrectAnswer only for text and boolean.
type QuizQuestion struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []QuizOption `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Points        int          `json:"points"`
}

// QuizDefinition is embedded in Problem as a JSON column.
type QuizDefinition struct {
	Enabled      bool           `json:"enabled"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	Questions    []QuizQuestion `json:"questions"`
	TimeLimit    int            `json:"timeLimit"`
	PassingScore int            `json:"passingScore"`
}

// CorrectOption returns the single option flagged correct.
func (q QuizQuestion) CorrectOption() (QuizOption, bool) {
	var found QuizOption
	count := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			found = opt
			count++
		}
	}
	return found, count == 1
}

func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" || q.Type == "" {
		return errors.New("each quiz question must have a question text and type")
	}
	if q.Points < 0 {
		return errors.New("question points cannot be negative")
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return errors.New("multiple choice questions must have at least 2 options")
		}
		if _, ok := q.CorrectOption(); !ok {
			return errors.New("multiple choice questions must have exactly one correct answer")
		}
	case TextQuestion, BooleanQuestion:
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return fmt.Errorf("%s questions must have a correct answer", q.Type)
		}
	default:
		return fmt.Errorf("unsupported question type %q", q.Type)
	}
	return nil
}

func (d QuizDefinition) Validate() error {
	if !d.Enabled {
		return nil
	}
	if len(d.Questions) == 0 {
		return errors.New("quiz is enabled but no questions provided")
	}
	if d.PassingScore < 0 || d.PassingScore > 100 {
		return errors.New("passing score must be between 0 and 100")
	}
	for i, q := range d.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Normalize fills the defaults applied when a problem is saved. A disabled
// quiz is reduced to its zero value.
func (d QuizDefinition) Normalize(problemTitle string) QuizDefinition {
	if !d.Enabled {
		return QuizDefinition{Questions: []QuizQuestion{}}
	}
	if d.Title == "" {
		d.Title = problemTitle + " Quiz"
	}
	if d.Description == "" {
		d.Description = "Complete this quiz to submit your idea"
	}
	if d.TimeLimit <= 0 {
		d.TimeLimit = DefaultQuizTimeLimit
	}
	if d.PassingScore == 0 {
		d.PassingScore = DefaultQuizPassingScore
	}
	questions := make([]QuizQuestion, len(d.Questions))
	for i, q := range d.Questions {
		if q.Points == 0 {
			q.Points = DefaultQuestionPoints
		}
		questions[i] = q
	}
	d.Questions = questions
	return d
}

// Redacted strips answer keys so the quiz can be shown to students.
func (d QuizDefinition) Redacted() QuizDefinition {
	questions := make([]QuizQuestion, len(d.Questions))
	for i, q := range d.Questions {
		q.CorrectAnswer = ""
		if len(q.Options) > 0 {
			opts := make([]QuizOption, len(q.Options))
			for j, opt := range q.Options {
				opts[j] = QuizOption{Text: opt.Text}
			}
			q.Options = opts
		}
		questions[i] = q
	}
	d.Questions = questions
	return d
}

// SubmittedAnswer is one entry of a quiz submission.
type SubmittedAnswer struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
}

// GradedAnswer is stored on the QuizResponse.
type GradedAnswer struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"isCorrect"`
	Points        int    `json:"points"`
}

type QuizResult struct {
	Answers    []GradedAnswer `json:"answers"`
	TotalScore int            `json:"totalScore"`
	MaxScore   int            `json:"maxScore"`
	Percentage int            `json:"percentage"`
	Passed     bool           `json:"passed"`
}
