package api

import (
	"errors"
	"fmt"
	"net/http"
	"recipe/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// 错误码定义
const (
	// 通用错误码
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeMethodNotAllowed   = "ERR_METHOD_NOT_ALLOWED"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// 认证错误码
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// APIError 统一的 API 错误响应结构
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse 返回统一格式的错误响应
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails 返回带详情的错误响应
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// 常用错误响应快捷函数

// BadRequest 400 错误请求
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401 未授权
func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

// Forbidden 403 禁止访问
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// MethodNotAllowed 405 方法不允许
func MethodNotAllowed(c *gin.Context) {
	ErrorResponse(c, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		fmt.Sprintf("method %q not allowed", c.Request.Method))
}

// InternalError 500 服务器内部错误
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503 服务不可用
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// ValidationFailed 400 字段校验失败，details 为字段到消息的映射
func ValidationFailed(c *gin.Context, fields map[string]string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid input", fields)
}

// InvalidPayload 无效的请求体
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}

// respondError maps a service error onto the response taxonomy. Unknown errors
// are logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	if verr, ok := service.AsValidationError(err); ok {
		ValidationFailed(c, verr.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		BadRequest(c, ErrCodeInvalidCredentials, "unable to authenticate with provided credentials")
	case errors.Is(err, service.ErrAuthentication):
		Unauthorized(c, "invalid token")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, ErrCodeNotFound, "not found")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
		InternalError(c, "internal server error")
	}
}

// respondBindError answers a failed ShouldBindJSON. Field failures become the
// same field map the services produce; anything else is a malformed body.
func respondBindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			field := strings.ToLower(fe.Field())
			if _, exists := fields[field]; !exists {
				fields[field] = fieldError(fe)
			}
		}
		ValidationFailed(c, fields)
		return
	}
	InvalidPayload(c)
}

// fieldError 将单个校验错误转换为可读消息
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
