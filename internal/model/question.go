package model

const QuestionTypeShortAnswer = "short_answer"

// swagger:model Question
type Question struct {
	BaseModel
	AssignmentID  uint   `gorm:"index;type:bigint unsigned;not null" json:"assignmentId"`
	QuestionText  string `gorm:"type:text;not null" json:"questionText"`
	CorrectAnswer string `gorm:"size:255;not null" json:"correctAnswer,omitempty"`
	QuestionType  string `gorm:"size:50;not null;default:'short_answer'" json:"questionType"`
	Position      int    `gorm:"not null" json:"position"` // ordinal within the assignment
}

func (Question) TableName() string {
	return "questions"
}
