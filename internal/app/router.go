package app

import (
	"survey_backend/docs"
	"survey_backend/internal/config"
	"survey_backend/internal/middleware"
	"survey_backend/internal/model"
	"survey_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.Use(middleware.RequestID())

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	v1 := router.Group("/api/v1")

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(v1, c)

	// 2. 需要登录的路由
	authGroup := v1.Group("")
	authGroup.Use(middleware.AuthMiddleware(a.services.auth), middleware.RoleMiddleware(model.RoleUser))
	a.registerUserRoutes(authGroup, c)

	// 3. 管理员相关接口
	adminGroup := v1.Group("")
	adminGroup.Use(middleware.AuthMiddleware(a.services.auth), middleware.RoleMiddleware(model.RoleAdmin))
	a.registerAdminRoutes(adminGroup, c)
}

func (a *App) registerPublicRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/register", c.auth.Register)
	rg.POST("/auth/login", c.auth.Login)
	rg.POST("/auth/reset-password", c.auth.ResetPassword)
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/auth/logout", c.auth.Logout)

	rg.GET("/survey-type", c.surveyType.ListSurveyTypes)
	rg.GET("/survey-type/:id", c.surveyType.GetSurveyType)

	rg.GET("/survey-group", c.surveyGroup.ListSurveyGroups)
	rg.GET("/survey-group/:name", c.surveyGroup.GetSurveyGroup)

	rg.GET("/survey", c.survey.ListSurveys)
	rg.GET("/survey/:id", c.survey.GetSurvey)

	rg.GET("/answer", c.answer.ListAnswers)
	rg.GET("/answer/:id", c.answer.GetAnswer)

	rg.GET("/result", c.result.GetResult)
	rg.GET("/result/:id", c.result.GetResultByID)
	rg.POST("/result", c.result.CreateResult)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/survey-group", c.surveyGroup.CreateSurveyGroup)
	rg.PUT("/survey-group/:name", c.surveyGroup.UpdateSurveyGroup)
	rg.DELETE("/survey-group/:name", c.surveyGroup.DeleteSurveyGroup)

	rg.POST("/survey", c.survey.CreateSurvey)
	rg.PUT("/survey/:id", c.survey.UpdateSurvey)
	rg.DELETE("/survey/:id", c.survey.DeleteSurvey)

	rg.POST("/answer", c.answer.CreateAnswer)
	rg.PUT("/answer/:id", c.answer.UpdateAnswer)
	rg.DELETE("/answer/:id", c.answer.DeleteAnswer)

	rg.GET("/result/export", c.result.ExportResults)
	rg.PUT("/result/:id", c.result.UpdateResult)
	rg.DELETE("/result/:id", c.result.DeleteResult)

	admin := rg.Group("/admin")
	{
		admin.POST("/role/add", c.admin.AddRole)
		admin.POST("/role/remove", c.admin.RemoveRole)
		admin.POST("/role/new", c.admin.NewRole)
		admin.GET("/user", c.admin.ListUsers)
		admin.GET("/user/:name", c.admin.GetUser)
		admin.DELETE("/user/delete/:name", c.admin.DeleteUser)
	}
}
