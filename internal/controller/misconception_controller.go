package controller

import (
	"guidly_backend/internal/service"
	"guidly_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MisconceptionController struct {
	misconceptions *service.MisconceptionService
}

func NewMisconceptionController(misconceptions *service.MisconceptionService) *MisconceptionController {
	return &MisconceptionController{misconceptions: misconceptions}
}

type suggestRequest struct {
	Topic        string `json:"topic" binding:"required"`
	QuestionText string `json:"questionText" binding:"required"`
}

// List godoc
// @Summary Misconception catalog for a topic
// @Tags misconceptions
// @Produce json
// @Security BearerAuth
// @Param topic query string true "Topic"
// @Success 200 {object} util.Response
// @Router /api/misconceptions [get]
func (ctl *MisconceptionController) List(c *gin.Context) {
	topic := c.Query("topic")
	if !util.IsValidTopic(topic) {
		util.BadRequest(c, "unknown topic")
		return
	}

	entries, err := ctl.misconceptions.Catalog(c.Request.Context(), topic)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, entries)
}

// Suggest godoc
// @Summary Suggest misconceptions for a draft question
// @Tags misconceptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body suggestRequest true "Draft question"
// @Success 200 {object} util.Response
// @Router /api/misconceptions/suggest [post]
func (ctl *MisconceptionController) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if !util.IsValidTopic(req.Topic) {
		util.BadRequest(c, "unknown topic")
		return
	}

	suggestions, err := ctl.misconceptions.Suggest(c.Request.Context(), req.Topic, req.QuestionText)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, suggestions)
}
