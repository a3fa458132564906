package model

type UserRole string

const (
	Student UserRole = "student"
	Company UserRole = "company"
	Admin   UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case Student, Company, Admin:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Username    string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password    string   `gorm:"size:100;not null" json:"-"`
	Role        UserRole `gorm:"size:20;not null;default:'student'" json:"role"`
	University  string   `gorm:"size:200" json:"university,omitempty"`
	Name        string   `gorm:"size:100" json:"name,omitempty"`
	Email       string   `gorm:"size:100" json:"email,omitempty"`
	CompanyName string   `gorm:"size:200" json:"companyName,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Public returns a copy with the credential removed.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Password = ""
	return &cp
}
