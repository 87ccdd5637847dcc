package model

import "time"

type UserRole string

const (
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User is a teacher account. Students never get accounts; they join an
// assignment through a StudentSession instead.
// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('teacher','admin');default:'teacher'" json:"role"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
