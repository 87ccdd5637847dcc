package service

import (
	"errors"
	"fmt"
	"guidly_backend/internal/model"
	"guidly_backend/internal/repository"
	"guidly_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

// PublicQuestion is a question as students see it, with the correct answer
// withheld.
type PublicQuestion struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
	Position     int    `json:"position"`
}

// PublicAssignment is the link-holder view of an assignment. Questions is
// empty when the assignment is closed.
type PublicAssignment struct {
	Title     string           `json:"title"`
	Topic     string           `json:"topic,omitempty"`
	IsClosed  bool             `json:"isClosed"`
	Questions []PublicQuestion `json:"questions,omitempty"`
}

// HomeworkService covers the student-facing flow: view, join, complete.
type HomeworkService struct {
	assignments *repository.AssignmentRepository
	questions   *repository.QuestionRepository
	sessions    *repository.SessionRepository
}

func NewHomeworkService(
	assignments *repository.AssignmentRepository,
	questions *repository.QuestionRepository,
	sessions *repository.SessionRepository,
) *HomeworkService {
	return &HomeworkService{
		assignments: assignments,
		questions:   questions,
		sessions:    sessions,
	}
}

// AssignmentBySlug resolves a share link. A closed assignment still
// resolves so the page can say so, but exposes only its title.
func (s *HomeworkService) AssignmentBySlug(slug string) (*PublicAssignment, error) {
	assignment, err := s.assignments.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	if assignment.IsClosed {
		return &PublicAssignment{Title: assignment.Title, IsClosed: true}, nil
	}

	questions, err := s.questions.ListByAssignment(assignment.ID)
	if err != nil {
		return nil, err
	}

	public := &PublicAssignment{
		Title:     assignment.Title,
		Topic:     assignment.Topic,
		Questions: make([]PublicQuestion, len(questions)),
	}
	for i, q := range questions {
		public.Questions[i] = PublicQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Position:     q.Position,
		}
	}
	return public, nil
}

// Start verifies the class code and opens a session for the student.
// Codes compare case-insensitively and are stored upper-case.
func (s *HomeworkService) Start(slug, studentName, classCode string) (*model.StudentSession, error) {
	studentName = strings.TrimSpace(studentName)
	if studentName == "" {
		return nil, fmt.Errorf("a name is required")
	}
	classCode = strings.ToUpper(strings.TrimSpace(classCode))
	if len(classCode) != util.ClassCodeLength {
		return nil, util.ErrWrongClassCode
	}

	assignment, err := s.assignments.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.IsClosed {
		return nil, util.ErrAssignmentClosed
	}
	if classCode != assignment.ClassCode {
		return nil, util.ErrWrongClassCode
	}

	session := &model.StudentSession{
		AssignmentID: assignment.ID,
		StudentName:  studentName,
		ClassCode:    classCode,
		StartedAt:    time.Now(),
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete stamps the session finished. Completing twice keeps the first
// timestamp.
func (s *HomeworkService) Complete(sessionID string) error {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}
	if session.CompletedAt != nil {
		return nil
	}
	return s.sessions.Complete(sessionID)
}
