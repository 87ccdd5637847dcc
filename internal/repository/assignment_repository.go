package repository

import (
	"guidly_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// CreateWithQuestions inserts the assignment, its questions and any authored
// misconception patterns in one transaction. Pattern slices are indexed per
// question position.
func (r *AssignmentRepository) CreateWithQuestions(assignment *model.Assignment, questions []model.Question, patterns map[int][]model.QuestionMisconception) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].AssignmentID = assignment.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}

			for _, p := range patterns[questions[i].Position] {
				p.QuestionID = questions[i].ID
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

// FindByIDForTeacher scopes the lookup by owner; a foreign teacher's id
// behaves exactly like a missing assignment.
func (r *AssignmentRepository) FindByIDForTeacher(id, teacherID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Where("id = ? AND teacher_id = ?", id, teacherID).First(&assignment).Error
	return &assignment, err
}

func (r *AssignmentRepository) FindBySlug(slug string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Where("link_slug = ?", slug).First(&assignment).Error
	return &assignment, err
}

func (r *AssignmentRepository) ListByTeacher(teacherID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Close(id, teacherID uint) error {
	result := r.DB.Model(&model.Assignment{}).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		Update("is_closed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
