package model

// TopicGeneral is the sentinel topic used as the catch-all catalog across all
// subjects when an assignment's own topic has no misconceptions.
const TopicGeneral = "general"

// Misconception is a curated description of a common student error pattern,
// scoped to a topic. The catalog is seeded data; end users never create
// misconceptions in the graded flow.
// swagger:model Misconception
type Misconception struct {
	BaseModel
	Topic              string `gorm:"size:50;index;not null" json:"topic"`
	Category           string `gorm:"size:100;not null" json:"category"`
	Description        string `gorm:"type:text;not null" json:"description"`
	TeachingSuggestion string `gorm:"type:text" json:"teachingSuggestion,omitempty"`
}

func (Misconception) TableName() string {
	return "misconceptions"
}
