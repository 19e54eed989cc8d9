package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const indexFile = "index.html"

// HandleIndex отдает статическую страницу из каталога StaticDir
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.cfg.StaticDir, indexFile)
	if _, err := os.Stat(path); err != nil {
		h.logger.Warn("Index page not found", zap.String("path", path), zap.Error(err))
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// HandlePing проверяет, что сервис запущен
func (h *Handler) HandlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}
