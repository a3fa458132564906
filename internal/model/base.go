package model

import (
	"time"

	"gorm.io/gorm"
)

// swagger:model
type BaseModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// LedgerModel has no soft delete: rows guarded by a unique index must really
// disappear when removed, otherwise the pair stays locked.
type LedgerModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Schema lists every persisted type. It is the only place tables are registered.
func Schema() []interface{} {
	return []interface{}{
		&User{},
		&Problem{},
		&Idea{},
		&QuizResponse{},
	}
}
