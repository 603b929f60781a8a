package controller

import (
	"survey_backend/internal/model"
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service       *service.ResultService
	ExportService *service.ExportService
}

func NewResultController(s *service.ResultService, export *service.ExportService) *ResultController {
	return &ResultController{Service: s, ExportService: export}
}

// swagger:model ResultRequest
type ResultRequest struct {
	UserID     uint   `json:"userId"`
	SurveyID   uint   `json:"surveyId" binding:"required"`
	UserResult string `json:"userResult" binding:"required"`
}

// swagger:model ResultUpdateRequest
type ResultUpdateRequest struct {
	UserResult string `json:"userResult" binding:"required"`
}

// GetResult godoc
// @Summary 获取用户对某个问题的作答
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int true "用户 id"
// @Param surveyId query int true "问题 id"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /api/v1/result [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	userID, ok1 := util.ParseUintParam(ctx.Query("userId"))
	surveyID, ok2 := util.ParseUintParam(ctx.Query("surveyId"))
	if !ok1 || !ok2 {
		util.BadRequest(ctx, "userId and surveyId are required")
		return
	}
	result, err := c.Service.GetResult(ctx.Request.Context(), userID, surveyID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetResultByID godoc
// @Summary 按 id 获取结果
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "结果 id"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /api/v1/result/{id} [get]
func (c *ResultController) GetResultByID(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	result, err := c.Service.GetResultByID(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// CreateResult godoc
// @Summary 提交作答
// @Description 非管理员只能为自己提交
// @Tags 结果
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ResultRequest true "作答"
// @Success 201 {object} util.Response{data=model.Result}
// @Failure 409 {object} util.Response "已作答"
// @Router /api/v1/result [post]
func (c *ResultController) CreateResult(ctx *gin.Context) {
	var req ResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	userID := req.UserID
	if userID == 0 || !claims.HasRole(model.RoleAdmin) {
		userID = claims.UserID
	}

	result, err := c.Service.CreateResult(ctx.Request.Context(), userID, req.SurveyID, req.UserResult)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// UpdateResult godoc
// @Summary 更新作答
// @Tags 结果
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "结果 id"
// @Param body body ResultUpdateRequest true "作答"
// @Success 200 {object} util.Response{data=model.Result}
// @Failure 404 {object} util.Response
// @Router /api/v1/result/{id} [put]
func (c *ResultController) UpdateResult(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req ResultUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.Service.UpdateResult(ctx.Request.Context(), id, req.UserResult)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// DeleteResult godoc
// @Summary 删除作答
// @Tags 结果
// @Security ApiKeyAuth
// @Param id path int true "结果 id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/v1/result/{id} [delete]
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteResult(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ExportResults godoc
// @Summary 导出问卷组的答题结果
// @Description 生成 CSV 并上传到配置的存储，返回文件地址
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param surveyGroup query string true "问卷组名称"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "问卷组不存在或没有结果"
// @Router /api/v1/result/export [get]
func (c *ResultController) ExportResults(ctx *gin.Context) {
	group := ctx.Query("surveyGroup")
	if group == "" {
		util.BadRequest(ctx, "surveyGroup is required")
		return
	}
	url, err := c.ExportService.ExportGroupResults(ctx.Request.Context(), group)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
