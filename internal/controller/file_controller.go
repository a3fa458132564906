package controller

import (
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FileController struct {
	StorageService *service.StorageService
}

func NewFileController(storageService *service.StorageService) *FileController {
	return &FileController{StorageService: storageService}
}

// UploadAttachments godoc
// @Summary 上传附件
// @Description 支持 PDF、Word、PowerPoint、Excel 和文本文件，单个文件最大 10MB
// @Tags 文件
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param attachments formData file true "附件，可多个"
// @Success 200 {object} util.Response{data=[]model.Attachment}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/files/upload [post]
func (c *FileController) UploadAttachments(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "No files uploaded")
		return
	}

	attachments, err := c.StorageService.UploadAttachments(ctx.Request.Context(), form.File["attachments"])
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, attachments)
}
