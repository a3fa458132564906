package controller

import (
	"engineer_connect_backend/internal/middleware"
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IdeaController struct {
	IdeaService *service.IdeaService
}

func NewIdeaController(ideaService *service.IdeaService) *IdeaController {
	return &IdeaController{IdeaService: ideaService}
}

// SubmitIdea godoc
// @Summary 提交想法
// @Description 每位学生对每个问题只能提交一次
// @Tags 想法
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.IdeaInput true "想法内容"
// @Success 201 {object} util.Response{data=model.Idea}
// @Failure 400 {object} util.Response "参数错误或重复提交"
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/ideas [post]
func (c *IdeaController) SubmitIdea(ctx *gin.Context) {
	var req service.IdeaInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	idea, err := c.IdeaService.Submit(ctx.Request.Context(), util.CurrentUser(ctx), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, idea)
}

// ListIdeas godoc
// @Summary 全部想法
// @Tags 想法
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Idea}
// @Failure 403 {object} util.Response
// @Router /api/ideas [get]
func (c *IdeaController) ListIdeas(ctx *gin.Context) {
	ideas, err := c.IdeaService.ListAll(ctx.Request.Context())
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, ideas)
}

// ListProblemIdeas godoc
// @Summary 问题下的想法
// @Tags 想法
// @Produce json
// @Security ApiKeyAuth
// @Param problemId path int true "问题ID"
// @Success 200 {object} util.Response{data=[]model.Idea}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/ideas/problem/{problemId} [get]
func (c *IdeaController) ListProblemIdeas(ctx *gin.Context) {
	ideas, err := c.IdeaService.ListByProblem(ctx.Request.Context(), middleware.ScopedProblem(ctx))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, ideas)
}

// GetIdea godoc
// @Summary 想法详情
// @Tags 想法
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "想法ID"
// @Success 200 {object} util.Response{data=model.Idea}
// @Failure 404 {object} util.Response
// @Router /api/ideas/{id} [get]
func (c *IdeaController) GetIdea(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, util.NotFoundError("Idea not found"))
		return
	}

	idea, err := c.IdeaService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, idea)
}
