package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService         *service.AuthService
	RegistrationService *service.RegistrationService
}

func NewAuthController(authService *service.AuthService, registrationService *service.RegistrationService) *AuthController {
	return &AuthController{
		AuthService:         authService,
		RegistrationService: registrationService,
	}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary 注册新用户
// @Description 创建具有 USER 角色的新用户
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用户名已存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/v1/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.RegistrationService.Register(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "username": user.Username})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 用户登录
// @Description 验证用户身份并返回JWT令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"accessToken": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"roles":    user.RoleNames(),
		},
	})
}

// Logout godoc
// @Summary 用户登出
// @Description 注销当前令牌
// @Tags 认证
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "登出成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/v1/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ResetPassword godoc
// @Summary 修改密码
// @Description 使用有效令牌修改密码，修改后令牌失效
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body ResetPasswordRequest true "新密码"
// @Success 200 {object} util.Response "修改成功"
// @Failure 400 {object} util.Response "两次密码不一致"
// @Failure 401 {object} util.Response "令牌无效"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/v1/auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ResetPassword(ctx.Request.Context(), req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
