package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nir-Bhay/LinkedIn-clone/config"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/router"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/svc"
	"github.com/Nir-Bhay/LinkedIn-clone/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := utils.InitLogger(cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	serviceCtx, err := svc.NewServiceContext(cfg)
	if err != nil {
		zap.L().Fatal("failed to initialise services", zap.Error(err))
	}
	defer serviceCtx.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router.Setup(serviceCtx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}
}
