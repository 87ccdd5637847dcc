package service

import (
	"context"
	"errors"
	"fmt"
	"guidly_backend/internal/model"
	"guidly_backend/internal/repository"
	"guidly_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

const slugRetries = 5

// QuestionInput is one authored question with its optional wrong-answer
// patterns.
type QuestionInput struct {
	QuestionText  string         `json:"questionText" binding:"required"`
	CorrectAnswer string         `json:"correctAnswer" binding:"required"`
	Patterns      []PatternInput `json:"patterns"`
}

// PatternInput links a predicted wrong answer to a catalog misconception,
// optionally with fully authored feedback.
type PatternInput struct {
	MisconceptionID    uint   `json:"misconceptionId" binding:"required"`
	WrongAnswerPattern string `json:"wrongAnswerPattern" binding:"required"`
	Explanation        string `json:"explanation"`
	FollowUpQuestion   string `json:"followUpQuestion"`
	FollowUpAnswer     string `json:"followUpAnswer"`
}

type CreateAssignmentInput struct {
	Title     string          `json:"title" binding:"required"`
	Topic     string          `json:"topic" binding:"required"`
	Questions []QuestionInput `json:"questions" binding:"required"`
}

// AssignmentDetail is the owning teacher's full view of one assignment.
type AssignmentDetail struct {
	Assignment *model.Assignment      `json:"assignment"`
	Questions  []model.Question       `json:"questions"`
	Sessions   []model.StudentSession `json:"sessions"`
	Insights   *AssignmentInsights    `json:"insights"`
}

// AssignmentService covers the teacher-side authoring lifecycle.
type AssignmentService struct {
	assignments *repository.AssignmentRepository
	questions   *repository.QuestionRepository
	sessions    *repository.SessionRepository
	insights    *InsightService
}

func NewAssignmentService(
	assignments *repository.AssignmentRepository,
	questions *repository.QuestionRepository,
	sessions *repository.SessionRepository,
	insights *InsightService,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		questions:   questions,
		sessions:    sessions,
		insights:    insights,
	}
}

// buildQuestionRows maps authored input to persistable rows. Questions and
// their patterns are numbered 1-based, and the pattern map is keyed by the
// question's position.
func buildQuestionRows(inputs []QuestionInput) ([]model.Question, map[int][]model.QuestionMisconception) {
	questions := make([]model.Question, len(inputs))
	patterns := make(map[int][]model.QuestionMisconception)
	for i, q := range inputs {
		questions[i] = model.Question{
			QuestionText:  strings.TrimSpace(q.QuestionText),
			CorrectAnswer: strings.TrimSpace(q.CorrectAnswer),
			QuestionType:  model.QuestionTypeShortAnswer,
			Position:      i + 1,
		}
		for j, p := range q.Patterns {
			patterns[i+1] = append(patterns[i+1], model.QuestionMisconception{
				MisconceptionID:    p.MisconceptionID,
				WrongAnswerPattern: p.WrongAnswerPattern,
				Explanation:        p.Explanation,
				FollowUpQuestion:   p.FollowUpQuestion,
				FollowUpAnswer:     p.FollowUpAnswer,
				Position:           j + 1,
			})
		}
	}
	return questions, patterns
}

// Create validates and persists an assignment with its questions and
// patterns in one transaction, minting the share link and class code.
func (s *AssignmentService) Create(teacherID uint, input CreateAssignmentInput) (*model.Assignment, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title must not be empty")
	}
	if !util.IsValidTopic(input.Topic) {
		return nil, fmt.Errorf("unknown topic %q", input.Topic)
	}
	if len(input.Questions) == 0 {
		return nil, fmt.Errorf("at least one question is required")
	}
	for i, q := range input.Questions {
		if strings.TrimSpace(q.QuestionText) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, fmt.Errorf("question %d needs both text and a correct answer", i+1)
		}
	}

	assignment := &model.Assignment{
		TeacherID: teacherID,
		Title:     strings.TrimSpace(input.Title),
		Topic:     input.Topic,
		ClassCode: util.GenerateClassCode(),
	}

	questions, patterns := buildQuestionRows(input.Questions)

	// Slug collisions are rare at 7 characters; retry on the unique index.
	var err error
	for attempt := 0; attempt < slugRetries; attempt++ {
		assignment.LinkSlug = util.GenerateLinkSlug()
		err = s.assignments.CreateWithQuestions(assignment, questions, patterns)
		if err == nil {
			return assignment, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, err
}

// List returns the teacher's assignments, newest first.
func (s *AssignmentService) List(teacherID uint) ([]model.Assignment, error) {
	return s.assignments.ListByTeacher(teacherID)
}

// Detail returns the full owner view including sessions and insights.
func (s *AssignmentService) Detail(ctx context.Context, id, teacherID uint) (*AssignmentDetail, error) {
	assignment, err := s.assignments.FindByIDForTeacher(id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	questions, err := s.questions.ListByAssignment(id)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByAssignment(id)
	if err != nil {
		return nil, err
	}
	insights, err := s.insights.ForAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AssignmentDetail{
		Assignment: assignment,
		Questions:  questions,
		Sessions:   sessions,
		Insights:   insights,
	}, nil
}

// Close stops further submissions. Closing is idempotent and permanent.
func (s *AssignmentService) Close(id, teacherID uint) error {
	err := s.assignments.Close(id, teacherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// An already-closed row also updates zero rows.
		if a, ferr := s.assignments.FindByIDForTeacher(id, teacherID); ferr == nil && a.IsClosed {
			return nil
		}
		return util.ErrAssignmentNotFound
	}
	return err
}
