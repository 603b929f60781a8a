package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	Service *service.AnswerService
}

func NewAnswerController(s *service.AnswerService) *AnswerController {
	return &AnswerController{Service: s}
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	Answer     string `json:"answer" binding:"required"`
	CorrectFlg bool   `json:"correctFlg"`
	SurveyID   uint   `json:"surveyId"`
}

func (r AnswerRequest) input() service.AnswerInput {
	return service.AnswerInput{Text: r.Answer, Correct: r.CorrectFlg, SurveyID: r.SurveyID}
}

// ListAnswers godoc
// @Summary 获取问题的所有选项
// @Tags 选项
// @Produce json
// @Security ApiKeyAuth
// @Param surveyId query int true "问题 id"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/v1/answer [get]
func (c *AnswerController) ListAnswers(ctx *gin.Context) {
	surveyID, ok := util.ParseUintParam(ctx.Query("surveyId"))
	if !ok {
		util.BadRequest(ctx, "surveyId is required")
		return
	}
	answers, err := c.Service.ListAnswersInSurvey(ctx.Request.Context(), surveyID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// GetAnswer godoc
// @Summary 按 id 获取选项
// @Tags 选项
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "选项 id"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/v1/answer/{id} [get]
func (c *AnswerController) GetAnswer(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	answer, err := c.Service.GetAnswerByID(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// CreateAnswer godoc
// @Summary 添加选项
// @Description 同一问题下选项文本唯一，且最多一个正确选项
// @Tags 选项
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AnswerRequest true "选项"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response "问题不存在"
// @Failure 409 {object} util.Response "选项重复或已有正确选项"
// @Router /api/v1/answer [post]
func (c *AnswerController) CreateAnswer(ctx *gin.Context) {
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	answer, err := c.Service.CreateAnswer(ctx.Request.Context(), req.input())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// UpdateAnswer godoc
// @Summary 更新选项
// @Tags 选项
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "选项 id"
// @Param body body AnswerRequest true "选项"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/answer/{id} [put]
func (c *AnswerController) UpdateAnswer(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	answer, err := c.Service.UpdateAnswer(ctx.Request.Context(), id, req.input())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// DeleteAnswer godoc
// @Summary 删除选项
// @Tags 选项
// @Security ApiKeyAuth
// @Param id path int true "选项 id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/v1/answer/{id} [delete]
func (c *AnswerController) DeleteAnswer(ctx *gin.Context) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.Service.DeleteAnswer(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
