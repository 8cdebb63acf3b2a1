package controller

import (
	"errors"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// Generate godoc
// @Summary 生成学习资料
// @Description 基于文档生成摘要、抽认卡或结构化笔记；生成失败时返回占位内容
// @Tags 学习资料
// @Accept  json
// @Produce  json
// @Param   body body service.GenerateMaterialRequest true "生成参数"
// @Success 201 {object} util.Response{data=model.StudyMaterial} "生成成功"
// @Failure 404 {object} util.Response "文件不存在"
// @Security BearerAuth
// @Router /api/materials/generate [post]
func (c *MaterialController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GenerateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.MaterialService.Generate(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrFileNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, material)
}

// List godoc
// @Summary 学习资料列表
// @Tags 学习资料
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.StudyMaterial}
// @Security BearerAuth
// @Router /api/materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	materials, err := c.MaterialService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// Get godoc
// @Summary 学习资料详情
// @Tags 学习资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Success 200 {object} util.Response{data=model.StudyMaterial}
// @Failure 404 {object} util.Response "资料不存在"
// @Security BearerAuth
// @Router /api/materials/{id} [get]
func (c *MaterialController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	material, err := c.MaterialService.Get(id, claims.UserID)
	if err != nil {
		util.Error(ctx, 404, err.Error())
		return
	}
	util.Success(ctx, material)
}

// Delete godoc
// @Summary 删除学习资料
// @Tags 学习资料
// @Produce  json
// @Param   id path int true "资料ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "资料不存在"
// @Security BearerAuth
// @Router /api/materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.MaterialService.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
