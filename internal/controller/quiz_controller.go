package controller

import (
	"engineer_connect_backend/internal/middleware"
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// SubmitQuiz godoc
// @Summary 提交测验
// @Description 评分并保存学生的测验答案，每个问题只能提交一次
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizSubmission true "答案"
// @Success 201 {object} util.Response{data=service.QuizOutcome}
// @Failure 400 {object} util.Response "重复提交"
// @Failure 404 {object} util.Response "测验不存在或未启用"
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req service.QuizSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.QuizService.Submit(ctx.Request.Context(), util.CurrentUser(ctx), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, outcome)
}

// GetOwnResponse godoc
// @Summary 我的测验结果
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param problemId path int true "问题ID"
// @Success 200 {object} util.Response{data=model.QuizResponse}
// @Failure 404 {object} util.Response
// @Router /api/quiz/response/{problemId} [get]
func (c *QuizController) GetOwnResponse(ctx *gin.Context) {
	problemID, err := util.ParseID(ctx.Param("problemId"))
	if err != nil {
		util.Fail(ctx, util.NotFoundError("Quiz response not found"))
		return
	}

	response, err := c.QuizService.GetOwn(ctx.Request.Context(), util.CurrentUser(ctx), problemID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, response)
}

// ListResponses godoc
// @Summary 问题的全部测验结果
// @Description 按得分率从高到低排序
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param problemId path int true "问题ID"
// @Success 200 {object} util.Response{data=[]model.QuizResponse}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/responses/{problemId} [get]
func (c *QuizController) ListResponses(ctx *gin.Context) {
	responses, err := c.QuizService.ListForProblem(ctx.Request.Context(), middleware.ScopedProblem(ctx))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// DeleteOwnResponse godoc
// @Summary 重新测验
// @Description 删除自己的测验结果以便重新作答
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param problemId path int true "问题ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quiz/response/{problemId} [delete]
func (c *QuizController) DeleteOwnResponse(ctx *gin.Context) {
	problemID, err := util.ParseID(ctx.Param("problemId"))
	if err != nil {
		util.Fail(ctx, util.NotFoundError("Quiz response not found"))
		return
	}

	if err := c.QuizService.Retake(ctx.Request.Context(), util.CurrentUser(ctx), problemID); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Quiz response deleted successfully. You can now retake the quiz."})
}
