package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"guidly_backend/internal/model"
	"guidly_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionStore struct{}

func (stubSessionStore) FindByID(id string) (*model.StudentSession, error) {
	return &model.StudentSession{UUIDBase: model.UUIDBase{ID: id}}, nil
}

type stubResponseStore struct {
	attachedID     uint
	attachedAnswer string
	attachedOK     bool
}

func (s *stubResponseStore) Create(*model.StudentResponse) error { return nil }

func (s *stubResponseStore) FindLatest(string, uint) (*model.StudentResponse, error) {
	return &model.StudentResponse{BaseModel: model.BaseModel{ID: 5}}, nil
}

func (s *stubResponseStore) AttachFollowUp(responseID uint, answer string, correct bool) error {
	s.attachedID = responseID
	s.attachedAnswer = answer
	s.attachedOK = correct
	return nil
}

func newFollowUpRouter(responses *stubResponseStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	grading := service.NewGradingService(stubSessionStore{}, nil, nil, nil, responses, nil, nil)
	ctl := NewHomeworkController(nil, grading)
	r := gin.New()
	r.POST("/api/homework/:slug/followup", ctl.FollowUp)
	return r
}

func TestFollowUpBindsFollowUpAnswerField(t *testing.T) {
	responses := &stubResponseStore{}
	r := newFollowUpRouter(responses)

	body := `{"sessionId": "sess-1", "questionId": 10, "followUpAnswer": "smaller pieces"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/homework/abc123/followup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), responses.attachedID)
	assert.Equal(t, "smaller pieces", responses.attachedAnswer)
	assert.True(t, responses.attachedOK)
}

func TestFollowUpRejectsMissingFollowUpAnswer(t *testing.T) {
	responses := &stubResponseStore{}
	r := newFollowUpRouter(responses)

	body := `{"sessionId": "sess-1", "questionId": 10, "answer": "smaller pieces"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/homework/abc123/followup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, responses.attachedAnswer)
}
