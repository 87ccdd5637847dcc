package service

import (
	"context"
	"fmt"
	"guidly_backend/internal/util"
	"guidly_backend/pkg/logger"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxExtractedQuestions = 5

// ExtractedQuestion is a draft question pulled from an uploaded document.
// Drafts are returned for teacher review, never persisted directly.
type ExtractedQuestion struct {
	QuestionText  string `json:"questionText"`
	CorrectAnswer string `json:"correctAnswer"`
}

// ExtractService turns an uploaded worksheet into draft questions.
type ExtractService struct {
	storage StorageProvider
	ai      TextCompleter
}

func NewExtractService(storage StorageProvider, ai TextCompleter) *ExtractService {
	return &ExtractService{storage: storage, ai: ai}
}

// ExtractQuestions validates and archives the upload, then drafts up to
// five question/answer pairs from its text.
func (s *ExtractService) ExtractQuestions(ctx context.Context, topic, filename, contentType string, data []byte) ([]ExtractedQuestion, error) {
	if !strings.HasPrefix(contentType, util.MimeText) {
		return nil, fmt.Errorf("only plain text uploads are supported, got %q", contentType)
	}
	if len(data) > util.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds the %d byte limit", util.MaxUploadBytes)
	}
	if !util.IsValidTopic(topic) {
		return nil, fmt.Errorf("unknown topic %q", topic)
	}

	text := strings.TrimSpace(string(data))
	if len(text) < util.MinExtractedChars {
		return nil, fmt.Errorf("document too short to extract questions from")
	}

	objectName := fmt.Sprintf("%s_%s_%s", time.Now().Format("20060102"), uuid.New().String()[:8], filename)
	if _, err := s.storage.Upload(ctx, objectName, contentType, data); err != nil {
		logger.Log.Warn("upload archive failed", zap.String("object", objectName), zap.Error(err))
	}

	prompt := fmt.Sprintf(`Extract homework questions from this document. The topic is %q.

Document:
%s

Find up to %d short-answer questions with their correct answers. Only include questions that have a clear, short answer.

Respond with a JSON array in this exact format:
[
  {"questionText": "...", "correctAnswer": "..."}
]`, topic, text, maxExtractedQuestions)

	raw, err := s.ai.Complete(ctx, prompt, 600)
	if err == nil {
		var drafts []ExtractedQuestion
		if extractJSONArray(raw, &drafts) {
			cleaned := make([]ExtractedQuestion, 0, maxExtractedQuestions)
			for _, d := range drafts {
				if strings.TrimSpace(d.QuestionText) == "" || strings.TrimSpace(d.CorrectAnswer) == "" {
					continue
				}
				cleaned = append(cleaned, d)
				if len(cleaned) == maxExtractedQuestions {
					break
				}
			}
			if len(cleaned) > 0 {
				return cleaned, nil
			}
		}
		logger.Log.Debug("unusable extraction output, falling back to heuristic")
	}

	return heuristicQuestions(text), nil
}

// heuristicQuestions pulls lines ending in a question mark, leaving the
// answers for the teacher to fill in.
func heuristicQuestions(text string) []ExtractedQuestion {
	var drafts []ExtractedQuestion
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, "?") && len(line) > 10 {
			drafts = append(drafts, ExtractedQuestion{QuestionText: line})
			if len(drafts) == maxExtractedQuestions {
				break
			}
		}
	}
	if drafts == nil {
		drafts = []ExtractedQuestion{}
	}
	return drafts
}
