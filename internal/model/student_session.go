package model

import "time"

// StudentSession is an ephemeral per-assignment student identity, created when
// a student joins with the right class code. CompletedAt is set once when the
// student finishes; the row is never updated otherwise.
// swagger:model StudentSession
type StudentSession struct {
	UUIDBase
	AssignmentID uint       `gorm:"index;type:bigint unsigned;not null" json:"assignmentId"`
	StudentName  string     `gorm:"size:100;not null" json:"studentName"`
	ClassCode    string     `gorm:"size:4;not null" json:"classCode"`
	StartedAt    time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func (StudentSession) TableName() string {
	return "student_sessions"
}
