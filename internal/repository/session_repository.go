package repository

import (
	"guidly_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.StudentSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.StudentSession, error) {
	var session model.StudentSession
	err := r.DB.Where("id = ?", id).First(&session).Error
	return &session, err
}

func (r *SessionRepository) Complete(id string) error {
	return r.DB.Model(&model.StudentSession{}).
		Where("id = ?", id).
		Update("completed_at", time.Now()).
		Error
}

func (r *SessionRepository) ListByAssignment(assignmentID uint) ([]model.StudentSession, error) {
	var sessions []model.StudentSession
	err := r.DB.Where("assignment_id = ?", assignmentID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}
