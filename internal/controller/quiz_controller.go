package controller

import (
	"errors"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService      *service.QuizService
	AnalyticsService *service.AnalyticsService
}

func NewQuizController(quizService *service.QuizService, analyticsService *service.AnalyticsService) *QuizController {
	return &QuizController{QuizService: quizService, AnalyticsService: analyticsService}
}

// Generate godoc
// @Summary 从文档生成测验
// @Description 基于已上传文档的抽取文本由AI生成测验题目
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   body body service.GenerateQuizRequest true "生成参数"
// @Success 201 {object} util.Response{data=model.Quiz} "生成成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "文件不存在"
// @Failure 502 {object} util.Response "生成内容无法解析"
// @Security BearerAuth
// @Router /api/quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.GenerateQuiz(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFileNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrGenerationFailed):
			util.Error(ctx, 502, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// List godoc
// @Summary 测验列表
// @Tags 测验
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Security BearerAuth
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quizzes, err := c.QuizService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary 测验详情
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.QuizService.Get(id, claims.UserID)
	if err != nil {
		util.Error(ctx, 404, err.Error())
		return
	}
	util.Success(ctx, quiz)
}

// Update godoc
// @Summary 编辑测验
// @Description 修改标题与题目，题目需至少一道且选项答案合法
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Param   body body service.UpdateQuizRequest true "编辑内容"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response "题目校验失败"
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(id, claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.Error(ctx, 404, err.Error())
		case errors.Is(err, util.ErrQuizNeedsQuestion),
			errors.Is(err, util.ErrQuestionNeedsTwo),
			errors.Is(err, util.ErrBadCorrectIndex):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除测验
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.QuizService.Delete(id, claims.UserID); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Submit godoc
// @Summary 提交作答
// @Description 服务端判分并保存作答，同时更新题型累计与学习记录
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   id path int true "测验ID"
// @Param   body body service.QuizSubmission true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitResult} "判分结果"
// @Failure 401 {object} util.Response "未登录，成绩不会被保存"
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Error(ctx, 401, util.ErrSignInRequired.Error())
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var submission service.QuizSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), claims.UserID, id, submission)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Attempts godoc
// @Summary 作答历史
// @Description 该测验按完成时间升序的全部作答
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) Attempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	attempts, err := c.QuizService.Attempts(id, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempts)
}

// Progress godoc
// @Summary 测验进度
// @Description 作答历史汇总、最好成绩与文字解读
// @Tags 测验
// @Produce  json
// @Param   id path int true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizProgress}
// @Failure 404 {object} util.Response "测验不存在"
// @Security BearerAuth
// @Router /api/quizzes/{id}/progress [get]
func (c *QuizController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.AnalyticsService.QuizProgress(id, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.Error(ctx, 404, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}
