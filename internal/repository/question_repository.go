package repository

import (
	"guidly_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	return &question, err
}

func (r *QuestionRepository) ListByAssignment(assignmentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("assignment_id = ?", assignmentID).
		Order("position ASC").
		Find(&questions).Error
	return questions, err
}

// ListPatterns returns a question's misconception patterns in authored order,
// with the linked misconception preloaded. Order matters: the resolver takes
// the first match.
func (r *QuestionRepository) ListPatterns(questionID uint) ([]model.QuestionMisconception, error) {
	var patterns []model.QuestionMisconception
	err := r.DB.Preload("Misconception").
		Where("question_id = ?", questionID).
		Order("position ASC, id ASC").
		Find(&patterns).Error
	return patterns, err
}
