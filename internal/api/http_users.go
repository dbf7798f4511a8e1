package api

import (
	"net/http"
	"recipe/internal/entity"
	"recipe/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateUser 公开注册
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.identity.CreateUser(ctx, req.Email, req.Password, service.UserFields{Name: req.Name})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.ToProfile(user))
}

// RetrieveProfile 返回当前用户资料
func (h *HTTPHandler) RetrieveProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respondError(c, service.ErrAuthentication)
		return
	}
	c.JSON(http.StatusOK, entity.ToProfile(user))
}

// UpdateProfile 修改当前用户的姓名或密码。PUT 与 PATCH 行为一致，
// 未提供的字段保持不变。
func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respondError(c, service.ErrAuthentication)
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	updated, err := h.identity.UpdateProfile(ctx, user.ID, service.ProfileUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ToProfile(updated))
}
