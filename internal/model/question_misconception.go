package model

// QuestionMisconception maps an author-defined wrong-answer rule on one
// question to a misconception. WrongAnswerPattern is either a regular
// expression or a literal answer string; resolution tries regex first and
// falls back to case-insensitive equality when the pattern does not compile.
//
// Position preserves the authored order: the first matching pattern wins.
// swagger:model QuestionMisconception
type QuestionMisconception struct {
	BaseModel
	QuestionID         uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	MisconceptionID    uint   `gorm:"index;type:bigint unsigned;not null" json:"misconceptionId"`
	WrongAnswerPattern string `gorm:"size:255;not null" json:"wrongAnswerPattern"`
	Explanation        string `gorm:"type:text" json:"explanation,omitempty"`
	FollowUpQuestion   string `gorm:"type:text" json:"followUpQuestion,omitempty"`
	FollowUpAnswer     string `gorm:"size:255" json:"followUpAnswer,omitempty"`
	Position           int    `gorm:"default:0" json:"position"`

	Misconception Misconception `gorm:"foreignKey:MisconceptionID" json:"misconception,omitempty"`
}

func (QuestionMisconception) TableName() string {
	return "question_misconceptions"
}
