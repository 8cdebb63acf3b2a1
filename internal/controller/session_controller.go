package controller

import (
	"errors"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// Start godoc
// @Summary 开始学习会话
// @Description 同一用户同时只允许一个进行中的会话，已有会话会被自动结束
// @Tags 学习会话
// @Accept  json
// @Produce  json
// @Param   body body service.StartSessionRequest true "会话信息"
// @Success 201 {object} util.Response{data=model.StudySession}
// @Security BearerAuth
// @Router /api/sessions/start [post]
func (c *SessionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Start(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// End godoc
// @Summary 结束学习会话
// @Description 结束会话并按实际时长计入学习分钟数
// @Tags 学习会话
// @Produce  json
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=model.StudySession}
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "会话已结束"
// @Security BearerAuth
// @Router /api/sessions/{id}/end [post]
func (c *SessionController) End(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, err := c.SessionService.End(id, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrSessionAlreadyOver):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

// List godoc
// @Summary 学习会话列表
// @Tags 学习会话
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.StudySession}
// @Security BearerAuth
// @Router /api/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.SessionService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
