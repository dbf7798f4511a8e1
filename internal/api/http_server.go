package api

import (
	"context"
	"net/http"
	"recipe/internal/config"
	"recipe/internal/entity"
	"recipe/internal/model"
	"recipe/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg  config.Config
	repo model.Repository

	// 服务层
	identity *service.IdentityService
	tokens   *service.TokenService
	stores   map[entity.ResourceKind]*service.ResourceStore
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository) *HTTPHandler {
	stores := make(map[entity.ResourceKind]*service.ResourceStore, len(entity.ResourceKinds))
	for _, kind := range entity.ResourceKinds {
		stores[kind] = service.NewResourceStore(repo, kind)
	}
	return &HTTPHandler{
		cfg:      cfg,
		repo:     repo,
		identity: service.NewIdentityService(repo, cfg.MinPasswordLength),
		tokens:   service.NewTokenService(repo),
		stores:   stores,
	}
}

// Identity exposes the identity service for bootstrap tasks.
func (h *HTTPHandler) Identity() *service.IdentityService {
	return h.identity
}

// requestContext 为单次请求创建带超时的上下文
func (h *HTTPHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := h.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// NewRouter builds the gin engine with every route registered.
func (h *HTTPHandler) NewRouter() *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(MetricsMiddleware())
	r.Use(CORSMiddleware(h.cfg.TokenHeader))
	r.Use(gin.Recovery())

	r.NoRoute(func(c *gin.Context) { NotFound(c, ErrCodeNotFound, "not found") })
	r.NoMethod(MethodNotAllowed)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := r.Group("/users")
	users.POST("/create", h.CreateUser)
	users.POST("/token", h.CreateToken)

	me := users.Group("/me")
	me.Use(h.AuthMiddleware())
	me.GET("", h.RetrieveProfile)
	me.PATCH("", h.UpdateProfile)
	me.PUT("", h.UpdateProfile)
	// 资料只能读取和修改
	me.POST("", MethodNotAllowed)

	recipe := r.Group("/recipe")
	recipe.Use(h.AuthMiddleware())
	for _, kind := range entity.ResourceKinds {
		recipe.GET("/"+kind.Path(), h.ListResources(kind))
		recipe.POST("/"+kind.Path(), h.CreateResource(kind))
	}

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware(), h.RequireStaff())
	admin.GET("/users", h.AdminListUsers)
	admin.POST("/users", h.AdminCreateUser)
	admin.GET("/users/:id", h.AdminGetUser)

	return r
}

// Health 检查数据库连通性
func (h *HTTPHandler) Health(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "repository not available")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("health check failed")
		ServiceUnavailable(c, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
