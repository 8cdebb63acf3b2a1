package controller

import (
	"errors"
	"strconv"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FileController struct {
	FileService *service.FileService
}

func NewFileController(fileService *service.FileService) *FileController {
	return &FileController{FileService: fileService}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// Upload godoc
// @Summary 上传学习文档
// @Description 上传PDF或纯文本文档，上限5MB，文本类会抽取正文供生成使用
// @Tags 文件
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "文档文件"
// @Param   subject formData string false "学科标签，缺省时按文件名推断"
// @Success 201 {object} util.Response{data=model.File} "上传成功"
// @Failure 400 {object} util.Response "文件过大或类型不允许"
// @Failure 401 {object} util.Response "未授权"
// @Security BearerAuth
// @Router /api/files [post]
func (c *FileController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := c.FileService.Upload(ctx.Request.Context(), claims.UserID, header, ctx.PostForm("subject"))
	if err != nil {
		if errors.Is(err, util.ErrFileTooLarge) {
			util.Error(ctx, 400, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, file)
}

// List godoc
// @Summary 文件列表
// @Description 当前用户上传的全部文档
// @Tags 文件
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.File}
// @Security BearerAuth
// @Router /api/files [get]
func (c *FileController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	files, err := c.FileService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}

// Get godoc
// @Summary 文件详情
// @Tags 文件
// @Produce  json
// @Param   id path int true "文件ID"
// @Success 200 {object} util.Response{data=model.File}
// @Failure 404 {object} util.Response "文件不存在"
// @Security BearerAuth
// @Router /api/files/{id} [get]
func (c *FileController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	file, err := c.FileService.Get(id, claims.UserID)
	if err != nil {
		util.Error(ctx, 404, util.ErrFileNotFound.Error())
		return
	}
	util.Success(ctx, file)
}

// Delete godoc
// @Summary 删除文件
// @Description 连同存储对象、关联测验与学习资料一起删除
// @Tags 文件
// @Produce  json
// @Param   id path int true "文件ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "文件不存在"
// @Security BearerAuth
// @Router /api/files/{id} [delete]
func (c *FileController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.FileService.Delete(ctx.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// SignedURL godoc
// @Summary 获取下载链接
// @Description 返回短时效的签名下载链接
// @Tags 文件
// @Produce  json
// @Param   id path int true "文件ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "文件不存在"
// @Security BearerAuth
// @Router /api/files/{id}/url [get]
func (c *FileController) SignedURL(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	url, err := c.FileService.SignedURL(ctx.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
