package model

import "time"

var Branches = []string{"computer", "mechanical", "electrical", "civil", "chemical", "aerospace"}

var Difficulties = []string{"beginner", "intermediate", "advanced"}

var AttachmentTypes = []string{"pdf", "ppt", "pptx", "doc", "docx", "xls", "xlsx", "txt", "other"}

type Attachment struct {
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	FileType     string    `json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	FilePath     string    `json:"filePath"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// swagger:model Problem
type Problem struct {
	BaseModel
	OwnerID     uint           `gorm:"index;not null" json:"postedBy"`
	Company     string         `gorm:"size:200;not null" json:"company"`
	Branch      string         `gorm:"size:30;index;not null" json:"branch"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	VideoURL    string         `gorm:"size:500" json:"videoUrl,omitempty"`
	Difficulty  string         `gorm:"size:20;not null" json:"difficulty"`
	Tags        []string       `gorm:"serializer:json;type:json" json:"tags"`
	Attachments []Attachment   `gorm:"serializer:json;type:json" json:"attachments"`
	Quiz        QuizDefinition `gorm:"serializer:json;type:json" json:"quiz"`
	Views       int64          `gorm:"default:0" json:"views"`
}

func (Problem) TableName() string {
	return "problems"
}

// ForStudents hides the quiz answer keys.
func (p Problem) ForStudents() Problem {
	p.Quiz = p.Quiz.Redacted()
	return p
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func ValidBranch(v string) bool     { return contains(Branches, v) }
func ValidDifficulty(v string) bool { return contains(Difficulties, v) }
