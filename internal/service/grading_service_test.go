package service

import (
	"context"
	"errors"
	"guidly_backend/internal/model"
	"guidly_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSessionStore struct {
	sessions map[string]*model.StudentSession
}

func (f *fakeSessionStore) FindByID(id string) (*model.StudentSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

type fakeAssignmentStore struct {
	assignments map[uint]*model.Assignment
}

func (f *fakeAssignmentStore) FindByID(id uint) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

type fakeQuestionStore struct {
	questions map[uint]*model.Question
	patterns  map[uint][]model.QuestionMisconception
}

func (f *fakeQuestionStore) FindByID(id uint) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuestionStore) ListPatterns(questionID uint) ([]model.QuestionMisconception, error) {
	return f.patterns[questionID], nil
}

type fakeMisconceptionStore struct {
	byTopic map[string][]model.Misconception
}

func (f *fakeMisconceptionStore) ListByTopic(_ context.Context, topic string) ([]model.Misconception, error) {
	return f.byTopic[topic], nil
}

type fakeResponseStore struct {
	responses []model.StudentResponse
	followUps map[uint]string
}

func (f *fakeResponseStore) Create(response *model.StudentResponse) error {
	response.ID = uint(len(f.responses) + 1)
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeResponseStore) FindLatest(sessionID string, questionID uint) (*model.StudentResponse, error) {
	for i := len(f.responses) - 1; i >= 0; i-- {
		r := f.responses[i]
		if r.SessionID == sessionID && r.QuestionID == questionID {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResponseStore) AttachFollowUp(responseID uint, followUpAnswer string, correct bool) error {
	if f.followUps == nil {
		f.followUps = make(map[uint]string)
	}
	f.followUps[responseID] = followUpAnswer
	for i := range f.responses {
		if f.responses[i].ID == responseID {
			f.responses[i].FollowUpAnswer = followUpAnswer
			f.responses[i].FollowUpCorrect = &correct
		}
	}
	return nil
}

func newGradingFixture(ai TextCompleter) (*GradingService, *fakeResponseStore, *fakeQuestionStore) {
	sessions := &fakeSessionStore{sessions: map[string]*model.StudentSession{
		"sess-1": {AssignmentID: 1, StudentName: "Ada", ClassCode: "ABCD", StartedAt: time.Now()},
	}}
	sessions.sessions["sess-1"].ID = "sess-1"

	assignments := &fakeAssignmentStore{assignments: map[uint]*model.Assignment{
		1: {Title: "Fractions warm-up", Topic: "fractions", ClassCode: "ABCD"},
	}}
	assignments.assignments[1].ID = 1

	questions := &fakeQuestionStore{
		questions: map[uint]*model.Question{
			10: {AssignmentID: 1, QuestionText: "What is 1/4 + 1/2?", CorrectAnswer: "3/4", Position: 1},
		},
		patterns: map[uint][]model.QuestionMisconception{},
	}
	questions.questions[10].ID = 10

	catalog := &fakeMisconceptionStore{byTopic: map[string][]model.Misconception{
		"fractions": {
			{BaseModel: model.BaseModel{ID: 100}, Topic: "fractions", Category: "Adding fractions", Description: "Adds numerators and denominators separately"},
			{BaseModel: model.BaseModel{ID: 101}, Topic: "fractions", Category: "Comparing fractions", Description: "Thinks a bigger denominator means a bigger fraction"},
		},
	}}

	responses := &fakeResponseStore{}
	explanations := NewExplanationService(ai)

	svc := NewGradingService(sessions, assignments, questions, catalog, responses, explanations, ai)
	return svc, responses, questions
}

func TestGradeAnswerCorrect(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("should not be called")}
	svc, responses, _ := newGradingFixture(ai)

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "3/4")
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Nil(t, result.Feedback)
	require.Len(t, responses.responses, 1)
	assert.True(t, responses.responses[0].IsCorrect)
	assert.Equal(t, 0, ai.calls)
}

func TestGradeAnswerEquivalentFraction(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("should not be called")}
	svc, _, _ := newGradingFixture(ai)

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "0.75")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
}

func TestGradeAnswerPatternMatchStaticFeedback(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, responses, questions := newGradingFixture(ai)

	questions.patterns[10] = []model.QuestionMisconception{
		{
			QuestionID:         10,
			MisconceptionID:    100,
			WrongAnswerPattern: "2/6",
			Explanation:        "You added tops and bottoms separately.",
			FollowUpQuestion:   "What is 1/4 + 1/4?",
			FollowUpAnswer:     "1/2",
			Misconception:      model.Misconception{Category: "Adding fractions", Description: "Adds numerators and denominators separately"},
		},
	}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "2/6")
	require.NoError(t, err)

	assert.False(t, result.IsCorrect)
	require.NotNil(t, result.Feedback)
	assert.Equal(t, "You added tops and bottoms separately.", result.Feedback.Explanation)
	assert.Equal(t, ConfidenceHigh, result.Feedback.Confidence)
	require.NotNil(t, result.MisconceptionID)
	assert.Equal(t, uint(100), *result.MisconceptionID)

	// a complete authored triple never touches the backend
	assert.Equal(t, 0, ai.calls)

	require.Len(t, responses.responses, 1)
	assert.Equal(t, "You added tops and bottoms separately.", responses.responses[0].Explanation)
}

func TestGradeAnswerPatternPrecedence(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, _, questions := newGradingFixture(ai)

	questions.patterns[10] = []model.QuestionMisconception{
		{
			MisconceptionID:    100,
			WrongAnswerPattern: "2/6",
			Explanation:        "first",
			FollowUpQuestion:   "q",
			FollowUpAnswer:     "a",
			Misconception:      model.Misconception{Category: "Adding fractions"},
		},
		{
			MisconceptionID:    101,
			WrongAnswerPattern: `\d/\d`,
			Explanation:        "second",
			FollowUpQuestion:   "q",
			FollowUpAnswer:     "a",
			Misconception:      model.Misconception{Category: "Comparing fractions"},
		},
	}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "2/6")
	require.NoError(t, err)
	assert.Equal(t, "first", result.Feedback.Explanation)
}

func TestGradeAnswerInvalidRegexFallsBackToLiteral(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, _, questions := newGradingFixture(ai)

	questions.patterns[10] = []model.QuestionMisconception{
		{
			MisconceptionID:    100,
			WrongAnswerPattern: "2/6[",
			Explanation:        "literal match",
			FollowUpQuestion:   "q",
			FollowUpAnswer:     "a",
			Misconception:      model.Misconception{Category: "Adding fractions"},
		},
	}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "2/6[")
	require.NoError(t, err)
	assert.Equal(t, "literal match", result.Feedback.Explanation)
}

func TestGradeAnswerPatternMatchesNormalizedAnswerOnly(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, _, questions := newGradingFixture(ai)

	// matches the raw "  2/6" but not the trimmed form
	questions.patterns[10] = []model.QuestionMisconception{
		{
			MisconceptionID:    150,
			WrongAnswerPattern: `^\s+2/6`,
			Explanation:        "authored",
			FollowUpQuestion:   "q",
			FollowUpAnswer:     "a",
			Misconception:      model.Misconception{Category: "Adding fractions"},
		},
	}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "  2/6")
	require.NoError(t, err)

	assert.False(t, result.IsCorrect)
	require.NotNil(t, result.MisconceptionID)
	assert.NotEqual(t, uint(150), *result.MisconceptionID)
	assert.NotEqual(t, "authored", result.Feedback.Explanation)
}

func TestGradeAnswerSelectorParsesBracketedChoice(t *testing.T) {
	ai := &fakeCompleter{replies: []string{
		"[2]",
		`{"explanation": "Bigger denominators mean smaller pieces.", "followUpQuestion": "Which is bigger, 1/2 or 1/3?", "followUpAnswer": "1/2"}`,
	}}
	svc, responses, _ := newGradingFixture(ai)

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	assert.False(t, result.IsCorrect)
	require.NotNil(t, result.MisconceptionID)
	assert.Equal(t, uint(101), *result.MisconceptionID)
	require.Len(t, responses.responses, 1)
	require.NotNil(t, responses.responses[0].MisconceptionID)
	assert.Equal(t, uint(101), *responses.responses[0].MisconceptionID)
}

func TestGradeAnswerSelectorFallsBackOnGarbage(t *testing.T) {
	ai := &fakeCompleter{replies: []string{
		"I think it's probably a sign error",
	}}
	svc, _, _ := newGradingFixture(ai)

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	// unusable selector output falls back to the first topic candidate
	require.NotNil(t, result.MisconceptionID)
	assert.Equal(t, uint(100), *result.MisconceptionID)
}

func TestGradeAnswerSelectorZeroMeansNone(t *testing.T) {
	ai := &fakeCompleter{replies: []string{"[0]"}}
	svc, _, _ := newGradingFixture(ai)

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	// [0] still yields the fallback candidate rather than nothing
	require.NotNil(t, result.MisconceptionID)
	assert.Equal(t, uint(100), *result.MisconceptionID)
	require.NotNil(t, result.Feedback)
	assert.NotEmpty(t, result.Feedback.Explanation)
}

func TestGradeAnswerEmptyTopicBorrowsGeneral(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, _, _ := newGradingFixture(ai)
	svc.misconceptions = &fakeMisconceptionStore{byTopic: map[string][]model.Misconception{
		"general": {
			{BaseModel: model.BaseModel{ID: 200}, Topic: "general", Category: "Procedural error", Description: "Right idea, wrong step"},
		},
	}}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	require.NotNil(t, result.MisconceptionID)
	assert.Equal(t, uint(200), *result.MisconceptionID)
	// the general fallback never consults the backend; the two failed calls
	// are the explanation ladder
	assert.Equal(t, 2, ai.calls)
}

func TestGradeAnswerGeneralFallbackTakesFirstEntry(t *testing.T) {
	ai := &fakeCompleter{replies: []string{
		"[2]",
		"[2]",
		"[2]",
	}}
	svc, _, _ := newGradingFixture(ai)
	svc.misconceptions = &fakeMisconceptionStore{byTopic: map[string][]model.Misconception{
		"general": {
			{BaseModel: model.BaseModel{ID: 200}, Topic: "general", Category: "Procedural error", Description: "Right idea, wrong step"},
			{BaseModel: model.BaseModel{ID: 201}, Topic: "general", Category: "Misread the question", Description: "Answered a different question"},
			{BaseModel: model.BaseModel{ID: 202}, Topic: "general", Category: "Guessed", Description: "No working shown"},
		},
	}}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	// the first general entry wins even with a backend eager to rank
	require.NotNil(t, result.MisconceptionID)
	assert.Equal(t, uint(200), *result.MisconceptionID)
	for _, p := range ai.prompts {
		assert.NotContains(t, p, "most likely misconception")
	}
}

func TestGradeAnswerNoCatalog(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, responses, _ := newGradingFixture(ai)
	svc.misconceptions = &fakeMisconceptionStore{byTopic: map[string][]model.Misconception{}}

	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	assert.False(t, result.IsCorrect)
	assert.Nil(t, result.MisconceptionID)
	require.NotNil(t, result.Feedback)
	assert.Equal(t, ConfidenceLow, result.Feedback.Confidence)
	require.Len(t, responses.responses, 1)
	assert.Nil(t, responses.responses[0].MisconceptionID)
}

func TestGradeAnswerUnknownSession(t *testing.T) {
	ai := &fakeCompleter{}
	svc, _, _ := newGradingFixture(ai)

	_, err := svc.GradeAnswer(context.Background(), "nope", 10, "3/4")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestGradeAnswerQuestionFromOtherAssignment(t *testing.T) {
	ai := &fakeCompleter{}
	svc, _, questions := newGradingFixture(ai)
	questions.questions[99] = &model.Question{AssignmentID: 2, CorrectAnswer: "x"}
	questions.questions[99].ID = 99

	_, err := svc.GradeAnswer(context.Background(), "sess-1", 99, "x")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestGradeAnswerClosedAssignment(t *testing.T) {
	ai := &fakeCompleter{}
	svc, _, _ := newGradingFixture(ai)
	closed := svc.assignments.(*fakeAssignmentStore).assignments[1]
	closed.IsClosed = true

	_, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "3/4")
	assert.ErrorIs(t, err, util.ErrAssignmentClosed)
}

func TestGradeAnswerResubmission(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, responses, _ := newGradingFixture(ai)

	_, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)
	result, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "3/4")
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	// each attempt is its own row
	assert.Len(t, responses.responses, 2)
}

func TestRecordFollowUp(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, responses, _ := newGradingFixture(ai)

	_, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)

	require.NoError(t, svc.RecordFollowUp("sess-1", 10, "1/2"))

	require.NotNil(t, responses.responses[0].FollowUpCorrect)
	assert.True(t, *responses.responses[0].FollowUpCorrect)
	assert.Equal(t, "1/2", responses.responses[0].FollowUpAnswer)
}

func TestRecordFollowUpAttachesToLatest(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc, responses, _ := newGradingFixture(ai)

	_, err := svc.GradeAnswer(context.Background(), "sess-1", 10, "1/6")
	require.NoError(t, err)
	_, err = svc.GradeAnswer(context.Background(), "sess-1", 10, "2/6")
	require.NoError(t, err)

	require.NoError(t, svc.RecordFollowUp("sess-1", 10, "whatever"))

	assert.Empty(t, responses.responses[0].FollowUpAnswer)
	assert.Equal(t, "whatever", responses.responses[1].FollowUpAnswer)
}

func TestRecordFollowUpWithoutResponse(t *testing.T) {
	ai := &fakeCompleter{}
	svc, _, _ := newGradingFixture(ai)

	err := svc.RecordFollowUp("sess-1", 10, "answer")
	assert.ErrorIs(t, err, util.ErrResponseNotFound)
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		raw  string
		max  int
		want int
		ok   bool
	}{
		{"[2]", 3, 2, true},
		{"[0]", 3, 0, true},
		{"2", 3, 2, true},
		{"The answer is [3].", 3, 3, true},
		{"[4]", 3, 0, false},
		{"none of these", 3, 0, false},
		{"", 3, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseSelection(tc.raw, tc.max)
		assert.Equal(t, tc.ok, ok, tc.raw)
		if ok {
			assert.Equal(t, tc.want, got, tc.raw)
		}
	}
}
