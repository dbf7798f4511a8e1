package api

import (
	"net/http"
	"recipe/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListResources 列出当前用户的某类资源
func (h *HTTPHandler) ListResources(kind entity.ResourceKind) gin.HandlerFunc {
	store := h.stores[kind]
	return func(c *gin.Context) {
		ctx, cancel := h.requestContext(c)
		defer cancel()

		items, err := store.List(ctx, CurrentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entity.ToResources(items))
	}
}

// CreateResource 为当前用户创建资源，所有者始终取自认证身份
func (h *HTTPHandler) CreateResource(kind entity.ResourceKind) gin.HandlerFunc {
	store := h.stores[kind]
	return func(c *gin.Context) {
		var req entity.ResourceCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := h.requestContext(c)
		defer cancel()

		created, err := store.Create(ctx, CurrentUser(c), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entity.Resource{ID: created.ID, Name: created.Name})
	}
}

