package app

import (
	"engineer_connect_backend/docs"
	"engineer_connect_backend/internal/middleware"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var (
	staffOnly   = middleware.AnyOf(model.Admin, model.Company)
	studentOnly = middleware.AnyOf(model.Student)
	adminOnly   = middleware.AnyOf(model.Admin)
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, guard *middleware.Guard) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	a.registerUserRoutes(api, c, guard)
	a.registerProblemRoutes(api, c, guard)
	a.registerIdeaRoutes(api, c, guard)
	a.registerQuizRoutes(api, c, guard)

	api.POST("/files/upload", guard.Enforce(middleware.Rule{Roles: staffOnly}), c.file.UploadAttachments)
}

func (a *App) registerUserRoutes(api *gin.RouterGroup, c *controllers, guard *middleware.Guard) {
	users := api.Group("/users")
	{
		users.POST("/register", c.auth.Register)
		users.POST("/login", c.auth.Login)
		users.GET("/profile", guard.Enforce(middleware.Authenticated), c.auth.Profile)
	}
}

func (a *App) registerProblemRoutes(api *gin.RouterGroup, c *controllers, guard *middleware.Guard) {
	owned := middleware.Rule{Roles: staffOnly, Scope: &middleware.ProblemScope{Param: "id"}}

	problems := api.Group("/problems")
	{
		problems.GET("", c.problem.ListProblems)
		problems.GET("/:id", c.problem.GetProblem)
		problems.POST("", guard.Enforce(middleware.Rule{Roles: staffOnly}), c.problem.CreateProblem)
		problems.PUT("/:id", guard.Enforce(owned), c.problem.UpdateProblem)
		problems.DELETE("/:id", guard.Enforce(owned), c.problem.DeleteProblem)
	}
}

func (a *App) registerIdeaRoutes(api *gin.RouterGroup, c *controllers, guard *middleware.Guard) {
	ideas := api.Group("/ideas")
	{
		ideas.POST("", guard.Enforce(middleware.Rule{Roles: studentOnly}), c.idea.SubmitIdea)
		ideas.GET("", guard.Enforce(middleware.Rule{Roles: adminOnly}), c.idea.ListIdeas)
		ideas.GET("/problem/:problemId", guard.Enforce(middleware.Rule{
			Roles: staffOnly,
			Scope: &middleware.ProblemScope{Param: "problemId"},
		}), c.idea.ListProblemIdeas)
		ideas.GET("/:id", guard.Enforce(middleware.Rule{Roles: adminOnly}), c.idea.GetIdea)
	}
}

func (a *App) registerQuizRoutes(api *gin.RouterGroup, c *controllers, guard *middleware.Guard) {
	student := guard.Enforce(middleware.Rule{Roles: studentOnly})

	quiz := api.Group("/quiz")
	{
		quiz.POST("/submit", student, c.quiz.SubmitQuiz)
		quiz.GET("/response/:problemId", student, c.quiz.GetOwnResponse)
		quiz.DELETE("/response/:problemId", student, c.quiz.DeleteOwnResponse)
		quiz.GET("/responses/:problemId", guard.Enforce(middleware.Rule{
			Roles: staffOnly,
			Scope: &middleware.ProblemScope{Param: "problemId"},
		}), c.quiz.ListResponses)
	}
}
