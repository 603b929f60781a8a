package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	Service *service.SurveyService
}

func NewSurveyController(s *service.SurveyService) *SurveyController {
	return &SurveyController{Service: s}
}

// swagger:model SurveyRequest
type SurveyRequest struct {
	SurveyQuestion string `json:"surveyQuestion" binding:"required"`
	SurveyTypeID   uint   `json:"surveyTypeId"`
}

func (r SurveyRequest) input() service.SurveyInput {
	return service.SurveyInput{Question: r.SurveyQuestion, SurveyTypeID: r.SurveyTypeID}
}

// ListSurveys godoc
// @Summary 获取问卷组内的所有问题
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param surveyGroupId query int true "问卷组 id"
// @Param withAnswers query string false "为 1 时包含选项"
// @Success 200 {object} util.Response{data=[]model.Survey}
// @Failure 404 {object} util.Response
// @Router /api/v1/survey [get]
func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	groupID, ok := util.ParseUintParam(ctx.Query("surveyGroupId"))
	if !ok {
		util.BadRequest(ctx, "surveyGroupId is required")
		return
	}
	surveys, err := c.Service.ListSurveysInGroup(ctx.Request.Context(), groupID, ctx.Query("withAnswers") == "1")
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, surveys)
}

// GetSurvey godoc
// @Summary 按 id 获取问题
// @Tags 问题
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问题 id"
// @Success 200 {object} util.Response{data=model.Survey}
// @Failure 404 {object} util.Response
// @Router /api/v1/survey/{id} [get]
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	survey, err := c.Service.GetSurveyByID(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, survey)
}

// CreateSurvey godoc
// @Summary 向问卷组添加问题
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param surveyGroupId query int true "问卷组 id"
// @Param body body SurveyRequest true "问题"
// @Success 201 {object} util.Response{data=model.Survey}
// @Failure 404 {object} util.Response "问卷组不存在"
// @Failure 409 {object} util.Response "问题已存在"
// @Router /api/v1/survey [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	groupID, ok := util.ParseUintParam(ctx.Query("surveyGroupId"))
	if !ok {
		util.BadRequest(ctx, "surveyGroupId is required")
		return
	}
	var req SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	survey, err := c.Service.CreateSurvey(ctx.Request.Context(), groupID, req.input())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, survey)
}

// UpdateSurvey godoc
// @Summary 更新问题
// @Tags 问题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "问题 id"
// @Param body body SurveyRequest true "问题"
// @Success 200 {object} util.Response{data=model.Survey}
// @Failure 404 {object} util.Response
// @Router /api/v1/survey/{id} [put]
func (c *SurveyController) UpdateSurvey(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req SurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	survey, err := c.Service.UpdateSurvey(ctx.Request.Context(), id, req.input())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, survey)
}

// DeleteSurvey godoc
// @Summary 删除问题
// @Tags 问题
// @Security ApiKeyAuth
// @Param id path int true "问题 id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/v1/survey/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteSurvey(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
