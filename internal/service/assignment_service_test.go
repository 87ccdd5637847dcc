package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuestionRowsNumbersOneBased(t *testing.T) {
	questions, patterns := buildQuestionRows([]QuestionInput{
		{
			QuestionText:  " What is 1/4 + 1/2? ",
			CorrectAnswer: " 3/4 ",
			Patterns: []PatternInput{
				{MisconceptionID: 100, WrongAnswerPattern: "2/6"},
				{MisconceptionID: 101, WrongAnswerPattern: "1/6"},
			},
		},
		{
			QuestionText:  "What is 1/2 of 10?",
			CorrectAnswer: "5",
		},
	})

	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Position)
	assert.Equal(t, 2, questions[1].Position)
	assert.Equal(t, "What is 1/4 + 1/2?", questions[0].QuestionText)
	assert.Equal(t, "3/4", questions[0].CorrectAnswer)

	// patterns are keyed by question position and numbered from 1
	require.Len(t, patterns[1], 2)
	assert.Equal(t, 1, patterns[1][0].Position)
	assert.Equal(t, 2, patterns[1][1].Position)
	assert.Empty(t, patterns[2])
}
