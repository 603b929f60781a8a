package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyTypeController struct {
	Service *service.SurveyTypeService
}

func NewSurveyTypeController(s *service.SurveyTypeService) *SurveyTypeController {
	return &SurveyTypeController{Service: s}
}

// ListSurveyTypes godoc
// @Summary 获取所有问卷类型
// @Tags 问卷类型
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SurveyType}
// @Router /api/v1/survey-type [get]
func (c *SurveyTypeController) ListSurveyTypes(ctx *gin.Context) {
	types, err := c.Service.ListSurveyTypes(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, types)
}

// GetSurveyType godoc
// @Summary 按 id 获取问卷类型
// @Tags 问卷类型
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "类型 id"
// @Success 200 {object} util.Response{data=model.SurveyType}
// @Failure 404 {object} util.Response
// @Router /api/v1/survey-type/{id} [get]
func (c *SurveyTypeController) GetSurveyType(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	st, err := c.Service.GetSurveyTypeByID(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, st)
}
