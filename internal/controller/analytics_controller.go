package controller

import (
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// Overview godoc
// @Summary 学习分析概览
// @Description 汇总文件、资料、测验、作答、学习时长与近7天进度；缺数据以0值呈现
// @Tags 分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.AnalyticsOverview}
// @Security BearerAuth
// @Router /api/analytics/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.AnalyticsService.Overview(ctx.Request.Context(), claims.UserID))
}

// QuestionTypes godoc
// @Summary 题型表现
// @Description 各题型累计正确率与近期趋势标签
// @Tags 分析
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.QuestionTypeStat}
// @Security BearerAuth
// @Router /api/analytics/question-types [get]
func (c *AnalyticsController) QuestionTypes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.AnalyticsService.QuestionTypeStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// Prediction godoc
// @Summary 得分预估
// @Description 基于整体与近期均值的启发式估计，响应中的basis字段说明计算方式
// @Tags 分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.ScorePrediction}
// @Security BearerAuth
// @Router /api/analytics/prediction [get]
func (c *AnalyticsController) Prediction(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.AnalyticsService.Prediction(ctx.Request.Context(), claims.UserID))
}

// Comparative godoc
// @Summary 对比统计
// @Description 相对固定基准的分位换算，基准为演示值
// @Tags 分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.ComparativeStats}
// @Security BearerAuth
// @Router /api/analytics/comparative [get]
func (c *AnalyticsController) Comparative(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.AnalyticsService.Comparative(ctx.Request.Context(), claims.UserID))
}

// Streak godoc
// @Summary 连续学习天数
// @Tags 分析
// @Produce  json
// @Success 200 {object} util.Response{data=model.LearningStreak}
// @Security BearerAuth
// @Router /api/analytics/streak [get]
func (c *AnalyticsController) Streak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.AnalyticsService.Streak(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, streak)
}
