package service

import (
	"context"
	"fmt"
	"guidly_backend/internal/model"
	"guidly_backend/pkg/logger"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type ResponseLister interface {
	ListByAssignment(assignmentID uint) ([]model.StudentResponse, error)
}

type SessionLister interface {
	ListByAssignment(assignmentID uint) ([]model.StudentSession, error)
}

// MisconceptionStat is one row of the teacher-facing ranking.
type MisconceptionStat struct {
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Examples    []string `json:"examples"`
}

type InsightStats struct {
	TotalStudents     int `json:"totalStudents"`
	CompletedStudents int `json:"completedStudents"`
	TotalResponses    int `json:"totalResponses"`
	CorrectResponses  int `json:"correctResponses"`
	Accuracy          int `json:"accuracy"`
}

// AssignmentInsights is the aggregated class-level view of one assignment.
type AssignmentInsights struct {
	TopMisconceptions []MisconceptionStat `json:"topMisconceptions"`
	Summary           string              `json:"summary"`
	Stats             InsightStats        `json:"stats"`
}

const (
	topMisconceptionLimit = 5
	exampleLimit          = 3
)

// InsightService aggregates recorded responses into per-assignment teacher
// insights.
type InsightService struct {
	responses ResponseLister
	sessions  SessionLister
	ai        TextCompleter
}

func NewInsightService(responses ResponseLister, sessions SessionLister, ai TextCompleter) *InsightService {
	return &InsightService{responses: responses, sessions: sessions, ai: ai}
}

// ForAssignment computes the insight view from all recorded responses.
func (s *InsightService) ForAssignment(ctx context.Context, assignmentID uint) (*AssignmentInsights, error) {
	responses, err := s.responses.ListByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}

	stats := InsightStats{
		TotalStudents:  len(sessions),
		TotalResponses: len(responses),
	}
	for _, sess := range sessions {
		if sess.CompletedAt != nil {
			stats.CompletedStudents++
		}
	}
	for _, r := range responses {
		if r.IsCorrect {
			stats.CorrectResponses++
		}
	}
	if stats.TotalResponses > 0 {
		stats.Accuracy = int(math.Round(float64(stats.CorrectResponses) / float64(stats.TotalResponses) * 100))
	}

	top := rankMisconceptions(responses)

	insights := &AssignmentInsights{
		TopMisconceptions: top,
		Stats:             stats,
	}
	if len(top) > 0 {
		insights.Summary = s.summarize(ctx, top, stats)
	}
	return insights, nil
}

// rankMisconceptions groups wrong answers by diagnosed misconception,
// ordered by count descending with first-seen order breaking ties.
func rankMisconceptions(responses []model.StudentResponse) []MisconceptionStat {
	type group struct {
		stat  MisconceptionStat
		order int
	}
	groups := make(map[uint]*group)
	var keys []uint

	for _, r := range responses {
		if r.IsCorrect || r.MisconceptionID == nil || r.Misconception == nil {
			continue
		}
		id := *r.MisconceptionID
		g, ok := groups[id]
		if !ok {
			g = &group{
				stat: MisconceptionStat{
					Category:    r.Misconception.Category,
					Description: r.Misconception.Description,
					Examples:    []string{},
				},
				order: len(keys),
			}
			groups[id] = g
			keys = append(keys, id)
		}
		g.stat.Count++
		if len(g.stat.Examples) < exampleLimit {
			g.stat.Examples = append(g.stat.Examples, r.Answer)
		}
	}

	ordered := make([]*group, 0, len(keys))
	for _, id := range keys {
		ordered = append(ordered, groups[id])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].stat.Count > ordered[j].stat.Count
	})

	limit := topMisconceptionLimit
	if len(ordered) < limit {
		limit = len(ordered)
	}
	stats := make([]MisconceptionStat, 0, limit)
	for _, g := range ordered[:limit] {
		stats = append(stats, g.stat)
	}
	return stats
}

// summarize asks for a two-sentence teacher summary, falling back to a
// templated sentence built from the top group.
func (s *InsightService) summarize(ctx context.Context, top []MisconceptionStat, stats InsightStats) string {
	var sb strings.Builder
	for _, t := range top {
		fmt.Fprintf(&sb, "- %s (%d students): %s\n", t.Category, t.Count, t.Description)
	}

	prompt := fmt.Sprintf(`You are summarising homework results for a teacher.

%d students answered, overall accuracy %d%%. The most common misconceptions were:
%s
Write a 1-2 sentence summary for the teacher highlighting what to revisit in the next lesson. Be concise and practical. Respond with only the summary text.`, stats.TotalStudents, stats.Accuracy, sb.String())

	raw, err := s.ai.Complete(ctx, prompt, 100)
	if err == nil {
		summary := strings.Trim(strings.TrimSpace(raw), `"'`)
		if len(summary) > 10 && len(summary) < 500 {
			return summary
		}
		logger.Log.Debug("discarding implausible generated summary", zap.Int("length", len(summary)))
	}

	lead := top[0]
	return fmt.Sprintf("The most common issue was %q (%d students). Consider revisiting %s in your next lesson.", lead.Category, lead.Count, lead.Description)
}
