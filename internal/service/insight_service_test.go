package service

import (
	"context"
	"errors"
	"guidly_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResponseLister struct {
	responses []model.StudentResponse
}

func (f *fakeResponseLister) ListByAssignment(uint) ([]model.StudentResponse, error) {
	return f.responses, nil
}

type fakeSessionLister struct {
	sessions []model.StudentSession
}

func (f *fakeSessionLister) ListByAssignment(uint) ([]model.StudentSession, error) {
	return f.sessions, nil
}

func uintPtr(v uint) *uint { return &v }

func wrongResponse(misconceptionID uint, category, answer string) model.StudentResponse {
	return model.StudentResponse{
		IsCorrect:       false,
		MisconceptionID: uintPtr(misconceptionID),
		Answer:          answer,
		Misconception: &model.Misconception{
			Category:    category,
			Description: category + " description",
		},
	}
}

func TestForAssignmentStats(t *testing.T) {
	now := time.Now()
	sessions := &fakeSessionLister{sessions: []model.StudentSession{
		{StudentName: "Ada", CompletedAt: &now},
		{StudentName: "Ben"},
		{StudentName: "Cleo", CompletedAt: &now},
	}}
	responses := &fakeResponseLister{responses: []model.StudentResponse{
		{IsCorrect: true},
		{IsCorrect: true},
		{IsCorrect: true},
		wrongResponse(1, "Adding fractions", "2/6"),
		wrongResponse(1, "Adding fractions", "1/6"),
	}}
	ai := &fakeCompleter{err: errors.New("backend down")}

	svc := NewInsightService(responses, sessions, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, insights.Stats.TotalStudents)
	assert.Equal(t, 2, insights.Stats.CompletedStudents)
	assert.Equal(t, 5, insights.Stats.TotalResponses)
	assert.Equal(t, 3, insights.Stats.CorrectResponses)
	assert.Equal(t, 60, insights.Stats.Accuracy)
}

func TestForAssignmentRanking(t *testing.T) {
	responses := &fakeResponseLister{responses: []model.StudentResponse{
		wrongResponse(2, "Comparing fractions", "1/6"),
		wrongResponse(1, "Adding fractions", "2/6"),
		wrongResponse(1, "Adding fractions", "2/8"),
		wrongResponse(1, "Adding fractions", "3/6"),
	}}
	ai := &fakeCompleter{err: errors.New("backend down")}

	svc := NewInsightService(responses, &fakeSessionLister{}, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, insights.TopMisconceptions, 2)
	assert.Equal(t, "Adding fractions", insights.TopMisconceptions[0].Category)
	assert.Equal(t, 3, insights.TopMisconceptions[0].Count)
	assert.Equal(t, []string{"2/6", "2/8", "3/6"}, insights.TopMisconceptions[0].Examples)
	assert.Equal(t, "Comparing fractions", insights.TopMisconceptions[1].Category)
}

func TestForAssignmentTieBreakIsFirstSeen(t *testing.T) {
	responses := &fakeResponseLister{responses: []model.StudentResponse{
		wrongResponse(5, "Tense consistency", "ran"),
		wrongResponse(3, "Subject-verb agreement", "is"),
	}}
	ai := &fakeCompleter{err: errors.New("backend down")}

	svc := NewInsightService(responses, &fakeSessionLister{}, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, insights.TopMisconceptions, 2)
	assert.Equal(t, "Tense consistency", insights.TopMisconceptions[0].Category)
}

func TestForAssignmentTopFiveAndExampleCap(t *testing.T) {
	var rs []model.StudentResponse
	for id := uint(1); id <= 7; id++ {
		for c := uint(0); c <= id; c++ {
			rs = append(rs, wrongResponse(id, "Cat", "ans"))
		}
	}
	ai := &fakeCompleter{err: errors.New("backend down")}

	svc := NewInsightService(&fakeResponseLister{responses: rs}, &fakeSessionLister{}, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	assert.Len(t, insights.TopMisconceptions, 5)
	for _, stat := range insights.TopMisconceptions {
		assert.LessOrEqual(t, len(stat.Examples), 3)
	}
	// most frequent first
	assert.Equal(t, 8, insights.TopMisconceptions[0].Count)
}

func TestForAssignmentGeneratedSummary(t *testing.T) {
	responses := &fakeResponseLister{responses: []model.StudentResponse{
		wrongResponse(1, "Adding fractions", "2/6"),
	}}
	ai := &fakeCompleter{replies: []string{
		`"Most students added denominators; revisit common denominators."`,
	}}

	svc := NewInsightService(responses, &fakeSessionLister{}, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	// surrounding quotes are stripped
	assert.Equal(t, "Most students added denominators; revisit common denominators.", insights.Summary)
}

func TestForAssignmentTemplatedSummaryFallback(t *testing.T) {
	responses := &fakeResponseLister{responses: []model.StudentResponse{
		wrongResponse(1, "Adding fractions", "2/6"),
		wrongResponse(1, "Adding fractions", "1/6"),
	}}
	ai := &fakeCompleter{err: errors.New("backend down")}

	svc := NewInsightService(responses, &fakeSessionLister{}, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	// quotes the category and points the teacher at the description
	assert.Contains(t, insights.Summary, `"Adding fractions" (2 students)`)
	assert.Contains(t, insights.Summary, "revisiting Adding fractions description")
}

func TestForAssignmentImplausibleSummaryRejected(t *testing.T) {
	responses := &fakeResponseLister{responses: []model.StudentResponse{
		wrongResponse(1, "Adding fractions", "2/6"),
	}}
	ai := &fakeCompleter{replies: []string{"ok"}}

	svc := NewInsightService(responses, &fakeSessionLister{}, ai)
	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	// a 2-character reply is not a usable summary
	assert.Contains(t, insights.Summary, "Consider revisiting")
}

func TestForAssignmentEmpty(t *testing.T) {
	ai := &fakeCompleter{err: errors.New("backend down")}
	svc := NewInsightService(&fakeResponseLister{}, &fakeSessionLister{}, ai)

	insights, err := svc.ForAssignment(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, insights.TopMisconceptions)
	assert.Empty(t, insights.Summary)
	assert.Equal(t, 0, insights.Stats.Accuracy)
	assert.Equal(t, 0, ai.calls)
}
