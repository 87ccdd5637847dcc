package service

import (
	"context"
	"errors"
	"fmt"
	"guidly_backend/internal/model"
	"guidly_backend/internal/util"
	"guidly_backend/pkg/logger"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Narrow store interfaces so grading can be exercised with fakes. The
// concrete repositories satisfy them.
type SessionStore interface {
	FindByID(id string) (*model.StudentSession, error)
}

type AssignmentStore interface {
	FindByID(id uint) (*model.Assignment, error)
}

type QuestionStore interface {
	FindByID(id uint) (*model.Question, error)
	ListPatterns(questionID uint) ([]model.QuestionMisconception, error)
}

type MisconceptionStore interface {
	ListByTopic(ctx context.Context, topic string) ([]model.Misconception, error)
}

type ResponseStore interface {
	Create(response *model.StudentResponse) error
	FindLatest(sessionID string, questionID uint) (*model.StudentResponse, error)
	AttachFollowUp(responseID uint, followUpAnswer string, correct bool) error
}

// GradeResult is what the answer endpoint returns to the student. Feedback
// is nil for correct answers.
type GradeResult struct {
	IsCorrect       bool      `json:"isCorrect"`
	Feedback        *Feedback `json:"feedback,omitempty"`
	MisconceptionID *uint     `json:"-"`
}

// GradingService checks a student answer, diagnoses the likely
// misconception behind a wrong one, and records the attempt.
type GradingService struct {
	sessions       SessionStore
	assignments    AssignmentStore
	questions      QuestionStore
	misconceptions MisconceptionStore
	responses      ResponseStore
	explanations   *ExplanationService
	ai             TextCompleter
}

func NewGradingService(
	sessions SessionStore,
	assignments AssignmentStore,
	questions QuestionStore,
	misconceptions MisconceptionStore,
	responses ResponseStore,
	explanations *ExplanationService,
	ai TextCompleter,
) *GradingService {
	return &GradingService{
		sessions:       sessions,
		assignments:    assignments,
		questions:      questions,
		misconceptions: misconceptions,
		responses:      responses,
		explanations:   explanations,
		ai:             ai,
	}
}

// GradeAnswer runs the full pipeline for one submitted answer. Each call is
// an independent attempt; resubmission inserts a new response row.
func (s *GradingService) GradeAnswer(ctx context.Context, sessionID string, questionID uint, answer string) (*GradeResult, error) {
	session, err := s.sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	question, err := s.questions.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.AssignmentID != session.AssignmentID {
		return nil, util.ErrQuestionNotFound
	}

	assignment, err := s.assignments.FindByID(session.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if assignment.IsClosed {
		return nil, util.ErrAssignmentClosed
	}

	if util.AnswerMatches(answer, question.CorrectAnswer) {
		response := &model.StudentResponse{
			SessionID:  sessionID,
			QuestionID: questionID,
			Answer:     answer,
			IsCorrect:  true,
			AnsweredAt: time.Now(),
		}
		if err := s.responses.Create(response); err != nil {
			return nil, err
		}
		return &GradeResult{IsCorrect: true}, nil
	}

	feedback, misconceptionID := s.diagnose(ctx, assignment, question, answer)

	response := &model.StudentResponse{
		SessionID:       sessionID,
		QuestionID:      questionID,
		Answer:          answer,
		IsCorrect:       false,
		MisconceptionID: misconceptionID,
		Explanation:     feedback.Explanation,
		AnsweredAt:      time.Now(),
	}
	if err := s.responses.Create(response); err != nil {
		return nil, err
	}

	return &GradeResult{
		IsCorrect:       false,
		Feedback:        &feedback,
		MisconceptionID: misconceptionID,
	}, nil
}

// diagnose resolves the likely misconception behind a wrong answer and
// produces feedback. Authored pattern matches short-circuit everything:
// if the matched pattern carries a complete static triple it is returned
// verbatim at high confidence.
func (s *GradingService) diagnose(ctx context.Context, assignment *model.Assignment, question *model.Question, answer string) (Feedback, *uint) {
	patterns, err := s.questions.ListPatterns(question.ID)
	if err != nil {
		logger.Log.Warn("pattern lookup failed", zap.Uint("questionID", question.ID), zap.Error(err))
		patterns = nil
	}

	if matched := matchPattern(patterns, answer); matched != nil {
		id := matched.MisconceptionID
		if matched.Explanation != "" && matched.FollowUpQuestion != "" && matched.FollowUpAnswer != "" {
			return Feedback{
				Explanation:      matched.Explanation,
				FollowUpQuestion: matched.FollowUpQuestion,
				FollowUpAnswer:   matched.FollowUpAnswer,
				Confidence:       ConfidenceHigh,
			}, &id
		}
		return s.explanations.Generate(ctx, ExplanationRequest{
			Question:                 question.QuestionText,
			CorrectAnswer:            question.CorrectAnswer,
			StudentAnswer:            answer,
			Topic:                    assignment.Topic,
			MisconceptionCategory:    matched.Misconception.Category,
			MisconceptionDescription: matched.Misconception.Description,
		}), &id
	}

	selected := s.selectMisconception(ctx, assignment.Topic, question, answer)

	req := ExplanationRequest{
		Question:      question.QuestionText,
		CorrectAnswer: question.CorrectAnswer,
		StudentAnswer: answer,
		Topic:         assignment.Topic,
	}
	var misconceptionID *uint
	if selected != nil {
		req.MisconceptionCategory = selected.Category
		req.MisconceptionDescription = selected.Description
		id := selected.ID
		misconceptionID = &id
	}
	return s.explanations.Generate(ctx, req), misconceptionID
}

// matchPattern walks authored wrong-answer patterns in position order and
// returns the first match. A pattern is tried as a case-insensitive regular
// expression; one that fails to compile is compared as a case-insensitive
// literal against the normalized answer instead.
func matchPattern(patterns []model.QuestionMisconception, answer string) *model.QuestionMisconception {
	normalized := util.NormalizeAnswer(answer)
	for i := range patterns {
		p := &patterns[i]
		if p.WrongAnswerPattern == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p.WrongAnswerPattern)
		if err != nil {
			if strings.EqualFold(strings.TrimSpace(p.WrongAnswerPattern), normalized) {
				return p
			}
			continue
		}
		if re.MatchString(normalized) {
			return p
		}
	}
	return nil
}

var (
	bracketedIDRe    = regexp.MustCompile(`\[(\d+)\]`)
	leadingOrdinalRe = regexp.MustCompile(`\b(\d+)\b`)
)

// selectMisconception picks the catalog entry that best explains the wrong
// answer. Topics without catalog entries fall back to the first entry of the
// general bucket without ranking. With one topic candidate there is nothing
// to choose; with several the generative backend ranks them, falling back to
// the first candidate in catalog order.
func (s *GradingService) selectMisconception(ctx context.Context, topic string, question *model.Question, answer string) *model.Misconception {
	candidates, err := s.misconceptions.ListByTopic(ctx, topic)
	if err != nil {
		logger.Log.Warn("misconception catalog lookup failed", zap.String("topic", topic), zap.Error(err))
		return nil
	}
	if len(candidates) == 0 && topic != model.TopicGeneral {
		general, err := s.misconceptions.ListByTopic(ctx, model.TopicGeneral)
		if err != nil {
			logger.Log.Warn("misconception catalog lookup failed", zap.String("topic", model.TopicGeneral), zap.Error(err))
			return nil
		}
		if len(general) == 0 {
			return nil
		}
		return &general[0]
	}
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return &candidates[0]
	}

	var sb strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&sb, "[%d] %s: %s\n", i+1, c.Category, c.Description)
	}

	prompt := fmt.Sprintf(`A student answered a question incorrectly. Identify which common misconception most likely explains their wrong answer.

Question: %s
Correct answer: %s
Student's answer: %s

Common misconceptions:
%s
Respond with ONLY the number of the most likely misconception in square brackets, e.g. [2]. If none fit, respond with [0].`, question.QuestionText, question.CorrectAnswer, answer, sb.String())

	raw, err := s.ai.Complete(ctx, prompt, 20)
	if err == nil {
		if idx, ok := parseSelection(raw, len(candidates)); ok {
			if idx == 0 {
				return &candidates[0]
			}
			return &candidates[idx-1]
		}
	}

	return &candidates[0]
}

// parseSelection reads a 1-based candidate index from model output. 0 is a
// valid "none fit" answer.
func parseSelection(raw string, max int) (int, bool) {
	var digits string
	if m := bracketedIDRe.FindStringSubmatch(raw); m != nil {
		digits = m[1]
	} else if m := leadingOrdinalRe.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
		digits = m[1]
	} else {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > max {
		return 0, false
	}
	return n, true
}

// RecordFollowUp attaches the follow-up reply to the latest response for
// the question. Follow-ups exist to nudge reflection, so the reply is
// accepted as correct.
func (s *GradingService) RecordFollowUp(sessionID string, questionID uint, followUpAnswer string) error {
	if _, err := s.sessions.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}

	latest, err := s.responses.FindLatest(sessionID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrResponseNotFound
		}
		return err
	}

	return s.responses.AttachFollowUp(latest.ID, followUpAnswer, true)
}
