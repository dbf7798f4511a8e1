package api

import (
	"errors"
	"net/http"
	"recipe/internal/entity"
	"recipe/internal/metrics"
	"recipe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateToken 用邮箱和密码换取令牌。同一用户重复请求返回同一个令牌。
func (h *HTTPHandler) CreateToken(c *gin.Context) {
	var req entity.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.identity.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.AuthFailuresTotal.WithLabelValues("credentials").Inc()
			logrus.WithField("email", service.NormalizeEmail(req.Email)).Warn("token request rejected")
		}
		respondError(c, err)
		return
	}

	key, err := h.tokens.IssueToken(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.TokenResponse{Token: key})
}
