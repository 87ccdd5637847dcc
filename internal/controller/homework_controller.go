package controller

import (
	"errors"
	"guidly_backend/internal/service"
	"guidly_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HomeworkController serves the unauthenticated student flow behind the
// share link.
type HomeworkController struct {
	homework *service.HomeworkService
	grading  *service.GradingService
}

func NewHomeworkController(homework *service.HomeworkService, grading *service.GradingService) *HomeworkController {
	return &HomeworkController{homework: homework, grading: grading}
}

type startRequest struct {
	StudentName string `json:"studentName" binding:"required"`
	ClassCode   string `json:"classCode" binding:"required"`
}

type answerRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type followUpRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"followUpAnswer" binding:"required"`
}

type completeRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// Get godoc
// @Summary View an assignment by share link
// @Tags homework
// @Produce json
// @Param slug path string true "Link slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/homework/{slug} [get]
func (ctl *HomeworkController) Get(c *gin.Context) {
	assignment, err := ctl.homework.AssignmentBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(c, "assignment not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, assignment)
}

// Start godoc
// @Summary Join an assignment with name and class code
// @Tags homework
// @Accept json
// @Produce json
// @Param slug path string true "Link slug"
// @Param request body startRequest true "Student details"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/homework/{slug}/start [post]
func (ctl *HomeworkController) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctl.homework.Start(c.Param("slug"), req.StudentName, req.ClassCode)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(c, "assignment not found")
		case errors.Is(err, util.ErrAssignmentClosed):
			util.Error(c, http.StatusConflict, "assignment is closed")
		case errors.Is(err, util.ErrWrongClassCode):
			util.BadRequest(c, "wrong class code")
		default:
			util.BadRequest(c, err.Error())
		}
		return
	}
	util.Created(c, gin.H{"sessionId": session.ID})
}

// Answer godoc
// @Summary Submit an answer for grading
// @Tags homework
// @Accept json
// @Produce json
// @Param slug path string true "Link slug"
// @Param request body answerRequest true "Answer"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/homework/{slug}/answer [post]
func (ctl *HomeworkController) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.grading.GradeAnswer(c.Request.Context(), req.SessionID, req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(c, "session not found")
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(c, "question not found")
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(c, "assignment not found")
		case errors.Is(err, util.ErrAssignmentClosed):
			util.Error(c, http.StatusConflict, "assignment is closed")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, result)
}

// FollowUp godoc
// @Summary Submit a follow-up answer
// @Tags homework
// @Accept json
// @Produce json
// @Param slug path string true "Link slug"
// @Param request body followUpRequest true "Follow-up answer"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/homework/{slug}/followup [post]
func (ctl *HomeworkController) FollowUp(c *gin.Context) {
	var req followUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	err := ctl.grading.RecordFollowUp(req.SessionID, req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(c, "session not found")
		case errors.Is(err, util.ErrResponseNotFound):
			util.NotFound(c, "no answer recorded for this question")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, gin.H{"isCorrect": true})
}

// Complete godoc
// @Summary Mark the session finished
// @Tags homework
// @Accept json
// @Produce json
// @Param slug path string true "Link slug"
// @Param request body completeRequest true "Session"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/homework/{slug}/complete [post]
func (ctl *HomeworkController) Complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.homework.Complete(req.SessionID); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(c, "session not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"completed": true})
}
