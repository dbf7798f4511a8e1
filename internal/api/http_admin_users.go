package api

import (
	"net/http"
	"recipe/internal/entity"
	"recipe/internal/logging"
	"recipe/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *HTTPHandler) AdminListUsers(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, err := h.identity.ListUsers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]entity.UserSummary, 0, len(users))
	for idx := range users {
		response = append(response, entity.ToSummary(&users[idx]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) AdminGetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, service.ErrNotFound)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.identity.GetUser(ctx, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.ToSummary(user))
}

func (h *HTTPHandler) AdminCreateUser(c *gin.Context) {
	var req entity.AdminUserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.identity.CreateUser(ctx, req.Email, req.Password, service.UserFields{
		Name:     req.Name,
		IsStaff:  req.IsStaff,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if actor := CurrentUser(c); actor != nil {
		logging.UserLogger(actor.ID, actor.Email).WithField("created_user_id", user.ID).Info("user created by staff")
	}
	c.JSON(http.StatusCreated, entity.ToSummary(user))
}
