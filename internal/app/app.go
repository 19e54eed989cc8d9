// Package app содержит основную структуру приложения и логику инициализации.
// Собирает клиенты YouTube, сервисы и HTTP-обработчики в один роутер.
package app

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/captions"
	"github.com/InQaaaaGit/yt_transcript.git/internal/config"
	"github.com/InQaaaaGit/yt_transcript.git/internal/handler"
	"github.com/InQaaaaGit/yt_transcript.git/internal/middleware"
	"github.com/InQaaaaGit/yt_transcript.git/internal/server"
	"github.com/InQaaaaGit/yt_transcript.git/internal/service"
	"github.com/InQaaaaGit/yt_transcript.git/internal/title"
)

// writeTimeout покрывает обработку самого большого пакета
const writeTimeout = 10 * time.Minute

// App представляет основное приложение сервиса транскриптов.
type App struct {
	config  *config.Config   // Конфигурация приложения
	router  *chi.Mux         // HTTP роутер для обработки запросов
	logger  *zap.Logger      // Логгер для записи событий приложения
	handler *handler.Handler // Обработчики HTTP запросов
}

// NewApp создает приложение: клиенты субтитров (обычный и, если задан файл cookie,
// авторизованный), поиск названий, пакетный сервис и обработчики.
//
// Возвращает ошибку, если не удалось разобрать сетевые настройки или файл cookie.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	clients, err := captions.NewSources(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating caption clients: %w", err)
	}
	sources := make([]service.CaptionSource, 0, len(clients))
	for _, c := range clients {
		sources = append(sources, c)
	}
	transcripts := service.NewTranscriptService(logger, cfg.FetchTimeout, sources...)

	var titles service.TitleLookup
	if cfg.EnableTitleLookup {
		httpClient, clientErr := captions.NewHTTPClient(captions.TransportOptions{
			ProxyURL:  cfg.ProxyURL,
			WorkerURL: cfg.WorkerURL,
			Timeout:   cfg.TitleTimeout,
		})
		if clientErr != nil {
			return nil, fmt.Errorf("error creating title client: %w", clientErr)
		}
		titles = title.NewLookup(httpClient, cfg.TitleTimeout, logger)
	}

	batch := service.NewBatchService(transcripts, titles, service.BatchOptions{
		MaxBatchSize:    cfg.MaxBatchSize,
		WorkerPoolSize:  cfg.WorkerPoolSize,
		DefaultLanguage: cfg.DefaultLanguage,
	}, logger)

	app := &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		handler: handler.NewHandler(batch, cfg, logger),
	}
	app.setupRoutes()

	logger.Info("Application configured",
		zap.Int("caption_clients", len(sources)),
		zap.Bool("title_lookup", titles != nil),
		zap.Int("worker_pool_size", cfg.WorkerPoolSize),
		zap.Int("max_batch_size", cfg.MaxBatchSize))

	return app, nil
}

// setupRoutes регистрирует middleware и маршруты
func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.CORS)
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)

	a.router.Get("/", a.handler.HandleIndex)
	a.router.Get("/ping", a.handler.HandlePing)
	a.router.Post("/api/transcripts", a.handler.HandleTranscripts)

	// Профилирование
	a.router.Mount("/debug/pprof", http.DefaultServeMux)
}

// Handler возвращает настроенный роутер
func (a *App) Handler() http.Handler {
	return a.router
}

// GetServer создает HTTP сервер с таймаутами. WriteTimeout рассчитан
// на пакет максимального размера.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

// Run запускает HTTP или HTTPS сервер и блокируется до отмены ctx
// или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	return server.NewHTTPServer(a.GetServer(), a.config, a.logger).Start(ctx)
}
