package service

import (
	"context"
	"fmt"
	"guidly_backend/pkg/logger"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Confidence labels how much of a feedback payload came from authored content
// versus generative fallback.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Feedback is the three-part payload shown to a student after a wrong
// answer. All three text fields are always non-empty.
type Feedback struct {
	Explanation      string `json:"explanation"`
	FollowUpQuestion string `json:"followUpQuestion"`
	FollowUpAnswer   string `json:"followUpAnswer"`
	Confidence       string `json:"confidence"`
}

// ExplanationRequest carries the full grading context into generation.
// MisconceptionDescription is empty when the selector found nothing.
type ExplanationRequest struct {
	Question                 string
	CorrectAnswer            string
	StudentAnswer            string
	Topic                    string
	MisconceptionCategory    string
	MisconceptionDescription string
}

// ExplanationService turns a matched misconception (or its absence) into
// student-facing feedback. The generative backend is consulted in strictly
// narrowing steps, each with a static floor, so the service still produces
// complete feedback with the backend permanently unavailable.
type ExplanationService struct {
	ai TextCompleter
}

func NewExplanationService(ai TextCompleter) *ExplanationService {
	return &ExplanationService{ai: ai}
}

type generatedFeedback struct {
	Explanation      string `json:"explanation"`
	FollowUpQuestion string `json:"followUpQuestion"`
	FollowUpAnswer   string `json:"followUpAnswer"`
}

// Generate never fails; the worst case is the fully templated fallback.
func (s *ExplanationService) Generate(ctx context.Context, req ExplanationRequest) Feedback {
	if req.MisconceptionDescription != "" {
		if fb, ok := s.combined(ctx, req); ok {
			return fb
		}
		if fb, ok := s.rephrased(ctx, req); ok {
			return fb
		}
		return s.staticFallback(req)
	}

	if fb, ok := s.contextFree(ctx, req); ok {
		return fb
	}
	return s.staticFallback(req)
}

// combined asks for the full payload in one constrained JSON call.
func (s *ExplanationService) combined(ctx context.Context, req ExplanationRequest) (Feedback, bool) {
	prompt := fmt.Sprintf(`You are helping a secondary school student understand why their answer is incorrect.

Question: %s
Correct answer: %s
Student's wrong answer: %s
Topic: %s
Misconception: %s

Provide:
1. A brief, clear explanation (2-3 sentences, at most 50 words) of why the answer is wrong, referencing the misconception.
2. One simple follow-up question to check if they understand the correct concept.
3. The correct answer to the follow-up question.

Respond in this exact JSON format:
{
  "explanation": "Why the answer is wrong",
  "followUpQuestion": "A simpler question to check understanding",
  "followUpAnswer": "The correct answer to the follow-up"
}`, req.Question, req.CorrectAnswer, req.StudentAnswer, req.Topic, req.MisconceptionDescription)

	raw, err := s.ai.Complete(ctx, prompt, 300)
	if err != nil {
		logger.Log.Debug("combined explanation call failed", zap.Error(err))
		return Feedback{}, false
	}

	var parsed generatedFeedback
	if !extractJSONObject(raw, &parsed) {
		return Feedback{}, false
	}
	if parsed.Explanation == "" || parsed.FollowUpQuestion == "" || parsed.FollowUpAnswer == "" {
		return Feedback{}, false
	}

	return Feedback{
		Explanation:      parsed.Explanation,
		FollowUpQuestion: parsed.FollowUpQuestion,
		FollowUpAnswer:   parsed.FollowUpAnswer,
		Confidence:       ConfidenceMedium,
	}, true
}

var (
	followUpQuestionRe = regexp.MustCompile(`(?i)Question:\s*(.+?)(?:\n|Answer:)`)
	followUpAnswerRe   = regexp.MustCompile(`(?i)Answer:\s*(.+?)(?:\n|$)`)
)

// rephrased is the narrower two-step fallback: rephrase the misconception
// description alone, then ask for a follow-up pair in a fixed line format.
// A failed follow-up step patches in the static follow-up instead.
func (s *ExplanationService) rephrased(ctx context.Context, req ExplanationRequest) (Feedback, bool) {
	rephrasePrompt := fmt.Sprintf(`Given the following misconception description and student answer, rewrite the explanation in clear, neutral language suitable for a secondary school student.

Do not introduce new concepts.
Do not add teaching strategies.
Do not mention the model or AI.

Misconception description: %s
Student answer: %s
Correct answer: %s

Respond with only the explanation text, no JSON or formatting.`, req.MisconceptionDescription, req.StudentAnswer, req.CorrectAnswer)

	rephrased, err := s.ai.Complete(ctx, rephrasePrompt, 150)
	if err != nil || len(rephrased) <= 20 {
		return Feedback{}, false
	}

	followUpPrompt := fmt.Sprintf(`Based on this question and misconception, create a simple follow-up question to check understanding.

Original question: %s
Correct answer: %s
Misconception: %s

Create ONE simpler question that tests the same concept. Keep it very simple.

Respond in this format:
Question: [your follow-up question]
Answer: [the correct answer]`, req.Question, req.CorrectAnswer, req.MisconceptionDescription)

	followUp, err := s.ai.Complete(ctx, followUpPrompt, 100)
	if err == nil {
		qm := followUpQuestionRe.FindStringSubmatch(followUp)
		am := followUpAnswerRe.FindStringSubmatch(followUp)
		if qm != nil && am != nil {
			return Feedback{
				Explanation:      rephrased,
				FollowUpQuestion: strings.TrimSpace(qm[1]),
				FollowUpAnswer:   strings.TrimSpace(am[1]),
				Confidence:       ConfidenceMedium,
			}, true
		}
	}

	fb := s.staticFallback(req)
	fb.Explanation = rephrased
	fb.Confidence = ConfidenceMedium
	return fb, true
}

// contextFree covers the no-misconception case from raw question context.
func (s *ExplanationService) contextFree(ctx context.Context, req ExplanationRequest) (Feedback, bool) {
	prompt := fmt.Sprintf(`You are helping a secondary school student understand why their answer is incorrect.

Question: %s
Correct answer: %s
Student's answer: %s
Topic: %s

Provide a brief, clear explanation of why the answer is wrong. Keep it to 2-3 sentences. Be encouraging, not critical.

Then provide one simple follow-up question to check understanding.

Respond in this exact JSON format:
{
  "explanation": "Why the answer is wrong",
  "followUpQuestion": "A simpler question to check understanding",
  "followUpAnswer": "The correct answer to the follow-up"
}`, req.Question, req.CorrectAnswer, req.StudentAnswer, req.Topic)

	raw, err := s.ai.Complete(ctx, prompt, 250)
	if err != nil {
		logger.Log.Debug("context-free explanation call failed", zap.Error(err))
		return Feedback{}, false
	}

	var parsed generatedFeedback
	if !extractJSONObject(raw, &parsed) {
		return Feedback{}, false
	}
	if parsed.Explanation == "" || parsed.FollowUpQuestion == "" || parsed.FollowUpAnswer == "" {
		return Feedback{}, false
	}

	return Feedback{
		Explanation:      parsed.Explanation,
		FollowUpQuestion: parsed.FollowUpQuestion,
		FollowUpAnswer:   parsed.FollowUpAnswer,
		Confidence:       ConfidenceMedium,
	}, true
}

// staticFallback interpolates the grading context into canned sentences. It
// is the floor beneath every generative step.
func (s *ExplanationService) staticFallback(req ExplanationRequest) Feedback {
	if req.MisconceptionDescription != "" {
		return Feedback{
			Explanation:      fmt.Sprintf("Your answer %q isn't quite right. %s. The correct answer is %s.", req.StudentAnswer, req.MisconceptionDescription, req.CorrectAnswer),
			FollowUpQuestion: "Can you try a similar question? What would happen if you applied the correct approach?",
			FollowUpAnswer:   req.CorrectAnswer,
			Confidence:       ConfidenceMedium,
		}
	}

	return Feedback{
		Explanation:      fmt.Sprintf("Your answer %q isn't correct. The right answer is %s. Take a moment to think about the approach you used.", req.StudentAnswer, req.CorrectAnswer),
		FollowUpQuestion: "Let's try again: what is the correct answer to this question?",
		FollowUpAnswer:   req.CorrectAnswer,
		Confidence:       ConfidenceLow,
	}
}
