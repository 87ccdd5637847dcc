package repository

import (
	"guidly_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create appends one graded submission. Responses are never upserted; retries
// produce history.
func (r *ResponseRepository) Create(response *model.StudentResponse) error {
	return r.DB.Create(response).Error
}

// FindLatest returns the most recent response for a (session, question)
// pair. The id is a stable secondary order for equal timestamps.
func (r *ResponseRepository) FindLatest(sessionID string, questionID uint) (*model.StudentResponse, error) {
	var response model.StudentResponse
	err := r.DB.Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Order("answered_at DESC, id DESC").
		First(&response).Error
	return &response, err
}

// AttachFollowUp records the follow-up outcome on an existing response. This
// is the only mutation a response row ever sees.
func (r *ResponseRepository) AttachFollowUp(responseID uint, followUpAnswer string, correct bool) error {
	return r.DB.Model(&model.StudentResponse{}).
		Where("id = ?", responseID).
		Updates(map[string]interface{}{
			"follow_up_answer":  followUpAnswer,
			"follow_up_correct": correct,
		}).Error
}

// ListByAssignment returns every response for an assignment's sessions with
// misconceptions preloaded, for insight aggregation.
func (r *ResponseRepository) ListByAssignment(assignmentID uint) ([]model.StudentResponse, error) {
	var responses []model.StudentResponse
	err := r.DB.Preload("Misconception").
		Joins("JOIN student_sessions ON student_sessions.id = student_responses.session_id").
		Where("student_sessions.assignment_id = ?", assignmentID).
		Find(&responses).Error
	return responses, err
}
