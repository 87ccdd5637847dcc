package model

// Assignment is a set of short-answer questions a teacher shares with a class
// through a public link and a 4-character class code.
//
// Topic is fixed at creation: misconception matching is scoped by it, so no
// update operation exposes it.
// swagger:model Assignment
type Assignment struct {
	BaseModel
	TeacherID uint   `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	Title     string `gorm:"size:255;not null" json:"title"`
	Topic     string `gorm:"size:50;not null" json:"topic"`
	LinkSlug  string `gorm:"size:16;uniqueIndex;not null" json:"linkSlug"`
	ClassCode string `gorm:"size:4;not null" json:"classCode"`
	IsClosed  bool   `gorm:"default:false" json:"isClosed"`

	Questions []Question `gorm:"foreignKey:AssignmentID" json:"questions,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
