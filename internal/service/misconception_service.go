package service

import (
	"context"
	"fmt"
	"guidly_backend/internal/model"
	"guidly_backend/pkg/logger"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const suggestionLimit = 3

// MisconceptionService exposes the misconception catalog to the authoring
// flow and suggests likely entries for a draft question.
type MisconceptionService struct {
	store MisconceptionStore
	ai    TextCompleter
}

func NewMisconceptionService(store MisconceptionStore, ai TextCompleter) *MisconceptionService {
	return &MisconceptionService{store: store, ai: ai}
}

// Catalog returns the entries for a topic plus the cross-topic general
// bucket, general entries last.
func (s *MisconceptionService) Catalog(ctx context.Context, topic string) ([]model.Misconception, error) {
	entries, err := s.store.ListByTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if topic == model.TopicGeneral {
		return entries, nil
	}
	general, err := s.store.ListByTopic(ctx, model.TopicGeneral)
	if err != nil {
		return nil, err
	}
	return append(entries, general...), nil
}

// Suggest ranks catalog entries likely to apply to a draft question. With
// the generative backend unavailable the first two topic entries are
// returned instead.
func (s *MisconceptionService) Suggest(ctx context.Context, topic, questionText string) ([]model.Misconception, error) {
	candidates, err := s.Catalog(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []model.Misconception{}, nil
	}

	var sb strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, c.Category, c.Description)
	}

	prompt := fmt.Sprintf(`A teacher is writing a homework question on the topic %q:

%s

Which of these misconceptions are most likely to show up in wrong answers?

%s
Respond with up to 3 numbers separated by commas, most likely first, e.g. 2,5,1. Respond with only the numbers.`, topic, questionText, sb.String())

	raw, err := s.ai.Complete(ctx, prompt, 30)
	if err != nil {
		logger.Log.Debug("suggestion call failed", zap.Error(err))
		return defaultSuggestions(candidates), nil
	}

	picked := parseSuggestionNumbers(raw, len(candidates))
	if len(picked) == 0 {
		return defaultSuggestions(candidates), nil
	}

	suggestions := make([]model.Misconception, 0, len(picked))
	for _, idx := range picked {
		suggestions = append(suggestions, candidates[idx-1])
	}
	return suggestions, nil
}

// parseSuggestionNumbers extracts up to suggestionLimit distinct 1-based
// indexes from model output.
func parseSuggestionNumbers(raw string, max int) []int {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r < '0' || r > '9'
	})
	seen := make(map[int]bool)
	var picked []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > max || seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, n)
		if len(picked) == suggestionLimit {
			break
		}
	}
	return picked
}

func defaultSuggestions(candidates []model.Misconception) []model.Misconception {
	limit := 2
	if len(candidates) < limit {
		limit = len(candidates)
	}
	return append([]model.Misconception{}, candidates[:limit]...)
}
