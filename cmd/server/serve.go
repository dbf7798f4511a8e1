package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"recipe/internal/api"
	"recipe/internal/config"
	"recipe/internal/model"
	"recipe/internal/service"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Wait for the database, migrate and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := model.WaitFor(ctx, model.DatabaseProbe(&cfg), cfg.DBWaitInterval); err != nil {
			return err
		}

		repo, err := model.InitRepository(&cfg)
		if err != nil {
			return fmt.Errorf("failed to initialise repository: %w", err)
		}
		defer repo.Close()

		handler := api.NewHTTPHandler(cfg, repo)
		if err := seedSuperuser(ctx, handler.Identity(), cfg); err != nil {
			logrus.WithError(err).Warn("failed to seed superuser")
		}

		// 设置Gin模式
		gin.SetMode(cfg.GinMode)
		return runServer(ctx, cfg, handler.NewRouter())
	},
}

// seedSuperuser 若配置了 ADMIN_EMAIL/ADMIN_PASSWORD，确保该超级用户存在
func seedSuperuser(ctx context.Context, identity *service.IdentityService, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	user, created, err := identity.EnsureSuperuser(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "created": created}).Info("superuser ensured")
	return nil
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("host", serverHost).Info("服务器启动")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务器启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
