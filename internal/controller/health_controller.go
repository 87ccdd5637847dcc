package controller

import (
	"guidly_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check godoc
// @Summary Liveness and database health
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (ctl *HealthController) Check(c *gin.Context) {
	status := gin.H{"status": "ok"}

	sqlDB, err := ctl.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		status["database"] = "ok"
	}

	util.Success(c, status)
}
