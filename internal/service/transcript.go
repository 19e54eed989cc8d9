// Package service содержит бизнес-логику: получение транскрипта одного видео
// с перебором источников и пакетную обработку списка URL.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/denoise"
	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
)

// Языки, между которыми работает запасной выбор дорожки
const (
	primaryLanguage   = "ko"
	secondaryLanguage = "en"
)

// CaptionSource источник субтитров (клиент YouTube)
type CaptionSource interface {
	Name() string
	Fetch(ctx context.Context, videoID string, languages []string) ([]models.CaptionEntry, error)
}

// FetchOptions параметры получения транскрипта
type FetchOptions struct {
	Language     string
	Denoise      bool
	Format       string
	KeepNewlines bool
}

// TranscriptService получает транскрипт, перебирая источники по порядку
type TranscriptService struct {
	sources []CaptionSource
	timeout time.Duration
	logger  *zap.Logger
}

// NewTranscriptService создает сервис. sources перебираются в переданном порядке,
// timeout ограничивает каждую попытку (0 означает без ограничения).
func NewTranscriptService(logger *zap.Logger, timeout time.Duration, sources ...CaptionSource) *TranscriptService {
	return &TranscriptService{
		sources: sources,
		timeout: timeout,
		logger:  logger,
	}
}

// Languages строит список предпочтительных языков: запрошенный и запасной
func Languages(lang string) []string {
	switch lang {
	case primaryLanguage:
		return []string{primaryLanguage, secondaryLanguage}
	case secondaryLanguage:
		return []string{secondaryLanguage, primaryLanguage}
	default:
		return []string{lang}
	}
}

// Fetch возвращает транскрипт видео. Ошибки не возвращаются:
// любая неудача описывается в FetchResult.Error.
func (s *TranscriptService) Fetch(ctx context.Context, videoID string, opts FetchOptions) (result models.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic while fetching transcript", zap.String("video_id", videoID), zap.Any("panic", r))
			result = models.Failed(Describe(fmt.Errorf("internal error: %v", r)))
		}
	}()

	entries, err := s.fetchEntries(ctx, videoID, Languages(opts.Language))
	if err != nil {
		return models.Failed(Describe(err))
	}

	return models.FetchResult{Transcript: Render(entries, opts)}
}

// fetchEntries пробует источники по порядку и возвращает первый успешный результат
func (s *TranscriptService) fetchEntries(ctx context.Context, videoID string, languages []string) ([]models.CaptionEntry, error) {
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("no caption sources configured")
	}

	var lastErr error
	for _, src := range s.sources {
		entries, err := s.attempt(ctx, src, videoID, languages)
		if err == nil {
			return entries, nil
		}
		lastErr = err

		kind := Classify(err)
		s.logger.Info("Caption source failed",
			zap.String("source", src.Name()),
			zap.String("video_id", videoID),
			zap.Int("kind", int(kind)),
			zap.Error(err))

		if kind.Final() {
			break
		}
	}
	return nil, lastErr
}

func (s *TranscriptService) attempt(ctx context.Context, src CaptionSource, videoID string, languages []string) ([]models.CaptionEntry, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return src.Fetch(ctx, videoID, languages)
}

// Render приводит записи к запрошенному формату и при необходимости очищает их
func Render(entries []models.CaptionEntry, opts FetchOptions) any {
	if entries == nil {
		entries = []models.CaptionEntry{}
	}
	if opts.Format == models.FormatStructured || opts.Format == models.FormatJSON {
		if opts.Denoise {
			return denoise.Entries(entries)
		}
		return entries
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}

	text := strings.Join(texts, "\n")
	if opts.Denoise {
		text = denoise.Text(text)
	}
	if opts.KeepNewlines {
		return text
	}
	return strings.Join(strings.Fields(text), " ")
}
