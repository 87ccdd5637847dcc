package controller

import (
	"errors"
	"guidly_backend/internal/service"
	"guidly_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a teacher account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Account details"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.BadRequest(c, "email is already registered")
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, result)
}

// Login godoc
// @Summary Log in as a teacher
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, result)
}

// Profile godoc
// @Summary Current teacher profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/profile [get]
func (ctl *AuthController) Profile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctl.auth.Profile(claims.UserID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}
