package api

import (
	"errors"
	"net/http"
	"recipe/internal/entity"
	"recipe/internal/metrics"
	"recipe/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	currentUserContextKey = "current-user"
)

// tokenSchemes 接受的授权方案，大小写不敏感
var tokenSchemes = []string{"Bearer", "Token"}

// AuthMiddleware 令牌认证中间件
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	header := h.cfg.TokenHeader
	if header == "" {
		header = "Authorization"
	}

	return func(c *gin.Context) {
		key, ok := extractTokenKey(c.GetHeader(header))
		if !ok {
			metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
			c.Header("WWW-Authenticate", "Token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "authentication credentials were not provided",
			})
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		user, err := h.tokens.ResolveToken(ctx, key)
		if err != nil {
			if errors.Is(err, service.ErrAuthentication) {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				c.Header("WWW-Authenticate", "Token")
				c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
					Code:    ErrCodeUnauthorized,
					Message: "invalid token",
				})
				return
			}
			logrus.WithError(err).Error("failed to resolve token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
				Code:    ErrCodeInternalError,
				Message: "internal server error",
			})
			return
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// extractTokenKey 解析 "<scheme> <key>" 格式的授权头
func extractTokenKey(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	for _, scheme := range tokenSchemes {
		if strings.EqualFold(parts[0], scheme) {
			return parts[1], true
		}
	}
	return "", false
}

// RequireStaff 员工权限守卫中间件
func (h *HTTPHandler) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff {
			Forbidden(c, "staff privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文获取当前认证用户
func CurrentUser(c *gin.Context) *entity.DbUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.DbUser)
	if !ok {
		return nil
	}
	return user
}
