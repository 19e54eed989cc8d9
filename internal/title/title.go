// Package title получает название видео со страницы просмотра YouTube.
// Поиск названия best-effort: любая ошибка или таймаут означают "названия нет".
package title

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	titleSuffix    = " - YouTube"
	maxPageSize    = 2 << 20
)

// Lookup ищет название видео
type Lookup struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewLookup создает Lookup. timeout ограничивает один поиск целиком.
func NewLookup(httpClient *http.Client, timeout time.Duration, logger *zap.Logger) *Lookup {
	return &Lookup{
		baseURL: defaultBaseURL,
		http:    httpClient,
		timeout: timeout,
		logger:  logger,
	}
}

// WithBaseURL возвращает копию Lookup с другим адресом YouTube
func (l *Lookup) WithBaseURL(baseURL string) *Lookup {
	cp := *l
	cp.baseURL = strings.TrimRight(baseURL, "/")
	return &cp
}

// Title возвращает название видео; false, если его не удалось получить
func (l *Lookup) Title(ctx context.Context, videoID string) (string, bool) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/watch?v="+url.QueryEscape(videoID), nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.8")

	resp, err := l.http.Do(req)
	if err != nil {
		l.logger.Debug("Title lookup failed", zap.String("video_id", videoID), zap.Error(err))
		return "", false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		l.logger.Debug("Title lookup failed", zap.String("video_id", videoID), zap.Int("status", resp.StatusCode))
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		l.logger.Debug("Title page parse failed", zap.String("video_id", videoID), zap.Error(err))
		return "", false
	}

	t := Extract(doc)
	return t, t != ""
}

// Extract достает название из og:title или <title> без суффикса " - YouTube"
func Extract(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if s := strings.TrimSpace(og); s != "" {
			return s
		}
	}

	s := strings.TrimSpace(doc.Find("title").First().Text())
	s = strings.TrimSpace(strings.TrimSuffix(s, titleSuffix))
	if s == "YouTube" {
		return ""
	}
	return s
}
