package controller

import (
	"errors"
	"guidly_backend/internal/service"
	"guidly_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	assignments *service.AssignmentService
}

func NewAssignmentController(assignments *service.AssignmentService) *AssignmentController {
	return &AssignmentController{assignments: assignments}
}

// Create godoc
// @Summary Create an assignment with questions
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateAssignmentInput true "Assignment"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/assignments [post]
func (ctl *AssignmentController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.CreateAssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	assignment, err := ctl.assignments.Create(claims.UserID, input)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.Created(c, assignment)
}

// List godoc
// @Summary List the teacher's assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/assignments [get]
func (ctl *AssignmentController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	assignments, err := ctl.assignments.List(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, assignments)
}

// Detail godoc
// @Summary Assignment detail with sessions and insights
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id} [get]
func (ctl *AssignmentController) Detail(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid assignment id")
		return
	}

	detail, err := ctl.assignments.Detail(c.Request.Context(), uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(c, "assignment not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, detail)
}

// Close godoc
// @Summary Close an assignment to further submissions
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/close [post]
func (ctl *AssignmentController) Close(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid assignment id")
		return
	}

	if err := ctl.assignments.Close(uint(id), claims.UserID); err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(c, "assignment not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, gin.H{"closed": true})
}
