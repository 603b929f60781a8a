package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyGroupController struct {
	Service *service.SurveyGroupService
}

func NewSurveyGroupController(s *service.SurveyGroupService) *SurveyGroupController {
	return &SurveyGroupController{Service: s}
}

// swagger:model SurveyGroupRequest
type SurveyGroupRequest struct {
	SurveyGroupName string `json:"surveyGroupName" binding:"required"`
	SurveyTypeID    uint   `json:"surveyTypeId" binding:"required"`
}

func (r SurveyGroupRequest) input() service.SurveyGroupInput {
	return service.SurveyGroupInput{Name: r.SurveyGroupName, SurveyTypeID: r.SurveyTypeID}
}

// ListSurveyGroups godoc
// @Summary 获取所有问卷组
// @Tags 问卷组
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SurveyGroup}
// @Router /api/v1/survey-group [get]
func (c *SurveyGroupController) ListSurveyGroups(ctx *gin.Context) {
	groups, err := c.Service.ListSurveyGroups(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// GetSurveyGroup godoc
// @Summary 按名称获取问卷组
// @Tags 问卷组
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "问卷组名称"
// @Success 200 {object} util.Response{data=model.SurveyGroup}
// @Failure 404 {object} util.Response
// @Router /api/v1/survey-group/{name} [get]
func (c *SurveyGroupController) GetSurveyGroup(ctx *gin.Context) {
	group, err := c.Service.GetSurveyGroupByName(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, group)
}

// CreateSurveyGroup godoc
// @Summary 创建问卷组
// @Tags 问卷组
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SurveyGroupRequest true "问卷组"
// @Success 201 {object} util.Response{data=model.SurveyGroup}
// @Failure 404 {object} util.Response "问卷类型不存在"
// @Failure 409 {object} util.Response "名称已存在"
// @Router /api/v1/survey-group [post]
func (c *SurveyGroupController) CreateSurveyGroup(ctx *gin.Context) {
	var req SurveyGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	group, err := c.Service.CreateSurveyGroup(ctx.Request.Context(), req.input())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, group)
}

// UpdateSurveyGroup godoc
// @Summary 更新问卷组
// @Tags 问卷组
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "问卷组名称"
// @Param body body SurveyGroupRequest true "问卷组"
// @Success 200 {object} util.Response{data=model.SurveyGroup}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/survey-group/{name} [put]
func (c *SurveyGroupController) UpdateSurveyGroup(ctx *gin.Context) {
	var req SurveyGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	group, err := c.Service.UpdateSurveyGroup(ctx.Request.Context(), ctx.Param("name"), req.input())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, group)
}

// DeleteSurveyGroup godoc
// @Summary 删除问卷组及其问题、选项与结果
// @Tags 问卷组
// @Security ApiKeyAuth
// @Param name path string true "问卷组名称"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/v1/survey-group/{name} [delete]
func (c *SurveyGroupController) DeleteSurveyGroup(ctx *gin.Context) {
	if err := c.Service.DeleteSurveyGroup(ctx.Request.Context(), ctx.Param("name")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
