// Package handler содержит HTTP-обработчики сервиса транскриптов.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/config"
	"github.com/InQaaaaGit/yt_transcript.git/internal/middleware"
	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
	"github.com/InQaaaaGit/yt_transcript.git/internal/service"
)

const (
	contentTypeJSON = "application/json"
	maxBodyBytes    = 1 << 20
)

// Сообщения об ошибках запроса
const (
	emptyBatchMessage        = "URL을 하나 이상 입력해주세요."
	batchTooLargeMessage     = "최대 %d개의 URL만 처리할 수 있습니다."
	invalidBodyMessage       = "잘못된 요청 형식입니다."
	unsupportedFormatMessage = "지원하지 않는 형식입니다. (text, structured)"
	internalErrorMessage     = "서버 오류가 발생했습니다."
)

// BatchProcessor обрабатывает пакет URL
type BatchProcessor interface {
	Process(ctx context.Context, req models.TranscriptRequest) (*models.TranscriptResponse, error)
	MaxBatchSize() int
}

type Handler struct {
	batch  BatchProcessor
	cfg    *config.Config
	logger *zap.Logger
}

func NewHandler(batch BatchProcessor, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		batch:  batch,
		cfg:    cfg,
		logger: logger,
	}
}

// HandleTranscripts обрабатывает POST /api/transcripts: получает транскрипты
// для списка URL. Ошибки отдельных URL возвращаются внутри результатов со статусом 200.
func (h *Handler) HandleTranscripts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, contentTypeJSON) {
		h.writeError(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	var req models.TranscriptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Info("Invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	h.logger.Info("Received transcript batch",
		zap.Int("urls", len(req.URLs)),
		zap.String("format", req.Format),
		zap.String("request_id", middleware.GetRequestID(r.Context())))

	resp, err := h.batch.Process(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			h.writeError(w, http.StatusBadRequest, emptyBatchMessage)
		case errors.Is(err, service.ErrBatchTooLarge):
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf(batchTooLargeMessage, h.batch.MaxBatchSize()))
		case errors.Is(err, service.ErrUnsupportedFormat):
			h.writeError(w, http.StatusBadRequest, unsupportedFormatMessage)
		default:
			h.logger.Error("Error processing batch", zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, internalErrorMessage)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}
