package captions

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/config"
)

// Имена клиентов в порядке использования
const (
	PlainClientName  = "plain"
	CookieClientName = "cookie"
)

// NewSources создает клиенты в порядке перебора: сначала без авторизации,
// затем, если задан файл cookie, авторизованный.
func NewSources(cfg *config.Config, logger *zap.Logger, opts ...Option) ([]*Client, error) {
	transport := TransportOptions{
		ProxyURL:  cfg.ProxyURL,
		WorkerURL: cfg.WorkerURL,
		Timeout:   cfg.FetchTimeout,
	}

	plainHTTP, err := NewHTTPClient(transport)
	if err != nil {
		return nil, fmt.Errorf("plain caption client: %w", err)
	}
	sources := []*Client{NewClient(PlainClientName, plainHTTP, logger, opts...)}

	if cfg.CookiesFile == "" {
		return sources, nil
	}

	jar, err := LoadCookieJar(cfg.CookiesFile)
	if err != nil {
		return nil, err
	}
	transport.Jar = jar
	cookieHTTP, err := NewHTTPClient(transport)
	if err != nil {
		return nil, fmt.Errorf("cookie caption client: %w", err)
	}
	sources = append(sources, NewClient(CookieClientName, cookieHTTP, logger, opts...))

	logger.Info("Cookie-authenticated caption client enabled", zap.String("cookies_file", cfg.CookiesFile))
	return sources, nil
}
