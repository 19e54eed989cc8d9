// Package captions реализует клиент источника субтитров YouTube:
// загрузку страницы просмотра, выбор дорожки субтитров и разбор timedtext XML.
//
// Клиент не классифицирует ошибки: он возвращает текстовое описание причины,
// а отнесение к категориям выполняет сервисный слой.
package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
)

const (
	// DefaultBaseURL адрес YouTube, к которому обращается клиент
	DefaultBaseURL = "https://www.youtube.com"

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"

	maxPageSize      = 6 << 20
	maxTimedTextSize = 2 << 20

	playerResponseMarker = "ytInitialPlayerResponse = "
)

// Client получает субтитры одного видео через веб-страницу YouTube
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option настраивает Client
type Option func(*Client)

// WithBaseURL переопределяет адрес YouTube (используется в тестах)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient создает клиент с заданным именем и HTTP-клиентом
func NewClient(name string, httpClient *http.Client, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		name:    name,
		baseURL: DefaultBaseURL,
		http:    httpClient,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name возвращает имя клиента для логов
func (c *Client) Name() string {
	return c.name
}

// Fetch возвращает записи субтитров видео videoID в первом доступном языке из languages
func (c *Client) Fetch(ctx context.Context, videoID string, languages []string) ([]models.CaptionEntry, error) {
	page, err := c.get(ctx, c.baseURL+"/watch?v="+url.QueryEscape(videoID), maxPageSize)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return nil, err
	}
	if err = player.playable(); err != nil {
		return nil, err
	}

	tracks := player.captionTracks()
	if tracks == nil {
		return nil, errors.New(msgDisabled)
	}

	track, ok := pickTrack(tracks, languages)
	if !ok {
		return nil, fmt.Errorf("%s %v (available: %v)", msgNoTranscript, languages, trackLanguages(tracks))
	}

	c.logger.Debug("Caption track selected",
		zap.String("client", c.name),
		zap.String("video_id", videoID),
		zap.String("language", track.LanguageCode),
		zap.Bool("generated", track.generated()))

	body, err := c.get(ctx, c.trackURL(track.BaseURL), maxTimedTextSize)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}

	return parseTimedText(body)
}

// trackURL приводит адрес дорожки к XML-формату и к базовому адресу клиента
func (c *Client) trackURL(raw string) string {
	raw = strings.Replace(raw, "&fmt=srv3", "", 1)
	if strings.HasPrefix(raw, "/") {
		return c.baseURL + raw
	}
	return raw
}

func (c *Client) get(ctx context.Context, target string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Error closing response body", zap.Error(err))
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.New(msgTooManyRequests)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// parsePlayerResponse извлекает ytInitialPlayerResponse из HTML страницы просмотра
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	idx := bytes.Index(page, []byte(playerResponseMarker))
	if idx < 0 {
		if bytes.Contains(page, []byte(`class="g-recaptcha"`)) {
			return nil, errors.New(msgTooManyRequests)
		}
		return nil, fmt.Errorf("%s: player response not found", msgUnavailable)
	}

	var player playerResponse
	dec := json.NewDecoder(bytes.NewReader(page[idx+len(playerResponseMarker):]))
	if err := dec.Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}
