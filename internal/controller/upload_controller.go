package controller

import (
	"guidly_backend/internal/service"
	"guidly_backend/internal/util"
	"io"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	extract *service.ExtractService
}

func NewUploadController(extract *service.ExtractService) *UploadController {
	return &UploadController{extract: extract}
}

// ExtractQuestions godoc
// @Summary Draft questions from an uploaded worksheet
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param topic formData string true "Topic"
// @Param file formData file true "Plain text document"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/upload/extract-questions [post]
func (ctl *UploadController) ExtractQuestions(c *gin.Context) {
	topic := c.PostForm("topic")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "a file is required")
		return
	}
	if fileHeader.Size > util.MaxUploadBytes {
		util.BadRequest(c, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, util.MaxUploadBytes+1))
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	questions, err := ctl.extract.ExtractQuestions(c.Request.Context(), topic, fileHeader.Filename, contentType, data)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	util.Success(c, gin.H{"questions": questions})
}
