package controller

import (
	"engineer_connect_backend/internal/middleware"
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProblemController struct {
	ProblemService *service.ProblemService
}

func NewProblemController(problemService *service.ProblemService) *ProblemController {
	return &ProblemController{ProblemService: problemService}
}

// ListProblems godoc
// @Summary 问题列表
// @Description 按发布时间倒序返回问题，可按专业方向过滤
// @Tags 问题
// @Produce json
// @Param branch query string false "专业方向" Enums(computer, mechanical, electrical, civil, chemical, aerospace)
// @Success 200 {object} util.Response{data=[]model.Problem}
// @Failure 400 {object} util.Response
// @Router /api/problems [get]
func (c *ProblemController) ListProblems(ctx *gin.Context) {
	problems, err := c.ProblemService.List(ctx.Request.Context(), ctx.Query("branch"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, problems)
}

// GetProblem godoc
// @Summary 问题详情
// @Description 返回问题详情并计入浏览量，测验答案不会返回
// @Tags 问题
// @Produce json
// @Param id path int true "问题ID"
// @Success 200 {object} util.Response{data=model.Problem}
// @Failure 404 {object} util.Response
// @Router /api/problems/{id} [get]
func (c *ProblemController) GetProblem(ctx *gin.Context) {
	id, err := util.ParseID(ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, util.NotFoundError("Problem not found"))
		return
	}

	problem, err := c.ProblemService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, problem)
}

// CreateProblem godoc
// @Summary 发布问题
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProblemInput true "问题内容"
// @Success 201 {object} util.Response{data=model.Problem}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/problems [post]
func (c *ProblemController) CreateProblem(ctx *gin.Context) {
	var req service.ProblemInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.ProblemService.Create(ctx.Request.Context(), util.CurrentUser(ctx), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, problem)
}

// UpdateProblem godoc
// @Summary 修改问题
// @Description 企业只能修改自己发布的问题，管理员可修改全部
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问题ID"
// @Param body body service.ProblemInput true "问题内容"
// @Success 200 {object} util.Response{data=model.Problem}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/problems/{id} [put]
func (c *ProblemController) UpdateProblem(ctx *gin.Context) {
	var req service.ProblemInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	problem, err := c.ProblemService.Update(ctx.Request.Context(), middleware.ScopedProblem(ctx), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, problem)
}

// DeleteProblem godoc
// @Summary 删除问题
// @Description 企业只能删除自己发布的问题，管理员可删除全部
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问题ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/problems/{id} [delete]
func (c *ProblemController) DeleteProblem(ctx *gin.Context) {
	problem := middleware.ScopedProblem(ctx)
	if err := c.ProblemService.Delete(ctx.Request.Context(), problem); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": problem.ID, "company": problem.Company})
}
