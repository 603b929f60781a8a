package util

import (
	"errors"
	"net/http"
	"survey_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

var (
	notFoundErrors = []error{
		ErrUserNotFound, ErrRoleNotFound, ErrSurveyTypeNotFound, ErrSurveyGroupNotFound,
		ErrSurveyNotFound, ErrAnswerNotFound, ErrResultNotFound, ErrExportEmpty,
	}
	conflictErrors = []error{
		ErrUserExists, ErrRoleExists, ErrSurveyGroupExists, ErrSurveyExists,
		ErrAnswerExists, ErrCorrectAnswerExists, ErrResultExists,
	}
	badRequestErrors = []error{
		ErrValidation, ErrPasswordMismatch,
	}
	unauthorizedErrors = []error{
		ErrInvalidCredentials, ErrInvalidToken,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// HandleServiceError 把 service 层的哨兵错误映射为 HTTP 状态码
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case isAny(err, notFoundErrors):
		Error(c, http.StatusNotFound, err.Error())
	case isAny(err, conflictErrors):
		Error(c, http.StatusConflict, err.Error())
	case isAny(err, badRequestErrors):
		BadRequest(c, err.Error())
	case isAny(err, unauthorizedErrors):
		Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	default:
		LogInternalError(c, err)
	}
}
