package model

import "time"

// StudentResponse is one graded submission. Rows are append-only: retries
// produce new rows, and the single post-creation mutation is attaching the
// follow-up outcome to the most recent row for a (session, question) pair.
// swagger:model StudentResponse
type StudentResponse struct {
	BaseModel
	SessionID       string    `gorm:"index;type:varchar(36);not null" json:"sessionId"`
	QuestionID      uint      `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Answer          string    `gorm:"type:text;not null" json:"answer"`
	IsCorrect       bool      `gorm:"not null" json:"isCorrect"`
	MisconceptionID *uint     `gorm:"index;type:bigint unsigned" json:"misconceptionId,omitempty"`
	Explanation     string    `gorm:"type:text" json:"explanation,omitempty"` // regenerated per incident, not reproducible
	FollowUpAnswer  string    `gorm:"size:255" json:"followUpAnswer,omitempty"`
	FollowUpCorrect *bool     `json:"followUpCorrect,omitempty"`
	AnsweredAt      time.Time `gorm:"index;not null" json:"answeredAt"`

	Misconception *Misconception `gorm:"foreignKey:MisconceptionID" json:"misconception,omitempty"`
}

func (StudentResponse) TableName() string {
	return "student_responses"
}
