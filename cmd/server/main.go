// cmd/server/main.go

// 表單介面與 JSON API 的 HTTP 服務。
// 依設定載入帳戶儲存檔或種子帳戶，收到 SIGINT/SIGTERM 時優雅關閉並（選擇性）匯出餘額快照。

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"banksim/internal/app"
	"banksim/internal/config"
	"banksim/internal/logging"
	"banksim/internal/server"
)

func main() {
	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	env, _ := fs.GetString("env")
	if v, ok := os.LookupEnv("BANK_APP_ENV"); ok && !fs.Changed("env") {
		env = v
	}
	logger, err := logging.New(env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(logger, fs)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	b, err := app.NewBank(logger, cfg)
	if err != nil {
		logger.Fatal("failed to open bank", zap.Error(err))
	}
	s := server.NewServer(logger, b, cfg.SessionCookie)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: s.Router(),
	}

	go func() {
		logger.Info("bank server started", zap.String("port", cfg.Port), zap.Bool("persisted", cfg.Persisted()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	app.ExportSnapshot(logger, cfg, b)
}
