package model

// Idea is unique per (student, problem); the index lives in the database so
// concurrent inserts cannot both succeed.
//
// swagger:model Idea
type Idea struct {
	LedgerModel
	StudentID              uint     `gorm:"not null;uniqueIndex:idx_idea_student_problem,priority:1" json:"student"`
	ProblemID              uint     `gorm:"not null;uniqueIndex:idx_idea_student_problem,priority:2;index:idx_idea_problem_created,priority:1" json:"problem"`
	IdeaText               string   `gorm:"type:text;not null" json:"ideaText"`
	ImplementationApproach string   `gorm:"type:text" json:"implementationApproach"`
	Student                *User    `gorm:"foreignKey:StudentID" json:"studentInfo,omitempty"`
	Problem                *Problem `gorm:"foreignKey:ProblemID" json:"problemInfo,omitempty"`
}

func (Idea) TableName() string {
	return "ideas"
}
