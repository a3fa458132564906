package model

import "time"

// QuizResponse is unique per (problem, student). Retakes hard-delete the row.
//
// swagger:model QuizResponse
type QuizResponse struct {
	LedgerModel
	ProblemID   uint           `gorm:"not null;uniqueIndex:idx_quiz_problem_student,priority:1" json:"problem"`
	StudentID   uint           `gorm:"not null;uniqueIndex:idx_quiz_problem_student,priority:2" json:"student"`
	Answers     []GradedAnswer `gorm:"serializer:json;type:json" json:"answers"`
	TotalScore  int            `gorm:"not null" json:"totalScore"`
	MaxScore    int            `gorm:"not null" json:"maxScore"`
	Percentage  int            `gorm:"not null;index" json:"percentage"`
	Passed      bool           `gorm:"not null" json:"passed"`
	TimeSpent   int            `gorm:"default:0" json:"timeSpent"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Student     *User          `gorm:"foreignKey:StudentID" json:"studentInfo,omitempty"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}
