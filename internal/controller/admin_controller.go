package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
	UserService  *service.UserService
}

func NewAdminController(adminService *service.AdminService, userService *service.UserService) *AdminController {
	return &AdminController{AdminService: adminService, UserService: userService}
}

// swagger:model RoleRequest
type RoleRequest struct {
	Username string `json:"username" binding:"required"`
	RoleName string `json:"roleName" binding:"required"`
}

// swagger:model RoleCreationRequest
type RoleCreationRequest struct {
	RoleName string `json:"roleName" binding:"required"`
}

// AddRole godoc
// @Summary 为用户添加角色
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RoleRequest true "用户名与角色"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "用户或角色不存在"
// @Router /api/v1/admin/role/add [post]
func (c *AdminController) AddRole(ctx *gin.Context) {
	var req RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.AdminService.AddRoleToUser(ctx.Request.Context(), req.Username, req.RoleName); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RemoveRole godoc
// @Summary 移除用户角色
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RoleRequest true "用户名与角色"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "用户或角色不存在"
// @Router /api/v1/admin/role/remove [post]
func (c *AdminController) RemoveRole(ctx *gin.Context) {
	var req RoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.AdminService.RemoveRoleFromUser(ctx.Request.Context(), req.Username, req.RoleName); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// NewRole godoc
// @Summary 创建新角色
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RoleCreationRequest true "角色名"
// @Success 201 {object} util.Response{data=model.Role}
// @Failure 409 {object} util.Response "角色已存在"
// @Router /api/v1/admin/role/new [post]
func (c *AdminController) NewRole(ctx *gin.Context) {
	var req RoleCreationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	role, err := c.AdminService.CreateRole(ctx.Request.Context(), req.RoleName)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, role)
}

// ListUsers godoc
// @Summary 获取所有用户
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/v1/admin/user [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// GetUser godoc
// @Summary 按用户名获取用户
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param name path string true "用户名"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/v1/admin/user/{name} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUserByUsername(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// DeleteUser godoc
// @Summary 删除用户及其答题结果
// @Tags 管理
// @Security ApiKeyAuth
// @Param name path string true "用户名"
// @Success 204
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/v1/admin/user/delete/{name} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.DeleteUser(ctx.Request.Context(), ctx.Param("name")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
