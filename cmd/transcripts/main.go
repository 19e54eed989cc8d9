// Сервис пакетного получения субтитров YouTube.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/app"
	"github.com/InQaaaaGit/yt_transcript.git/internal/buildinfo"
	"github.com/InQaaaaGit/yt_transcript.git/internal/config"
	"github.com/InQaaaaGit/yt_transcript.git/internal/server"
)

// Заполняются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	logger, cleanup := server.InitLogger()
	defer cleanup()

	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Log(logger)

	cfg := server.InitConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// run собирает приложение и блокируется до остановки сервера
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	application, err := app.NewApp(cfg, logger)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
