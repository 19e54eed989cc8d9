package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
	"github.com/InQaaaaGit/yt_transcript.git/internal/videoid"
)

// Fetcher получает транскрипт одного видео
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, opts FetchOptions) models.FetchResult
}

// TitleLookup ищет название видео; false означает "названия нет"
type TitleLookup interface {
	Title(ctx context.Context, videoID string) (string, bool)
}

// BatchOptions параметры пакетной обработки
type BatchOptions struct {
	MaxBatchSize    int    // Лимит URL в одном запросе
	WorkerPoolSize  int    // Число одновременных сетевых вызовов на весь процесс
	DefaultLanguage string // Язык, если клиент его не указал
}

// BatchService обрабатывает пакет URL: каждый URL независимо, сетевые вызовы
// выполняются через общий пул ограниченного размера.
type BatchService struct {
	fetcher Fetcher
	titles  TitleLookup // nil, если поиск названий отключен
	pool    *semaphore.Weighted
	opts    BatchOptions
	logger  *zap.Logger
}

// NewBatchService создает BatchService. titles может быть nil.
func NewBatchService(fetcher Fetcher, titles TitleLookup, opts BatchOptions, logger *zap.Logger) *BatchService {
	if opts.WorkerPoolSize <= 0 {
		opts.WorkerPoolSize = 1
	}
	return &BatchService{
		fetcher: fetcher,
		titles:  titles,
		pool:    semaphore.NewWeighted(int64(opts.WorkerPoolSize)),
		opts:    opts,
		logger:  logger,
	}
}

// MaxBatchSize возвращает лимит URL в одном запросе
func (b *BatchService) MaxBatchSize() int {
	return b.opts.MaxBatchSize
}

// Validate нормализует запрос: удаляет пустые URL, подставляет значения по умолчанию
// и проверяет ограничения. Возвращает очищенный список URL.
func (b *BatchService) Validate(req *models.TranscriptRequest) ([]string, error) {
	if req.Format == "" {
		req.Format = models.FormatText
	}
	switch req.Format {
	case models.FormatText, models.FormatStructured, models.FormatJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	if strings.TrimSpace(req.Language) == "" {
		req.Language = b.opts.DefaultLanguage
	}
	req.Language = strings.TrimSpace(req.Language)

	urls := make([]string, 0, len(req.URLs))
	for _, u := range req.URLs {
		if s := strings.TrimSpace(u); s != "" {
			urls = append(urls, s)
		}
	}

	if len(urls) == 0 {
		return nil, ErrEmptyBatch
	}
	if b.opts.MaxBatchSize > 0 && len(urls) > b.opts.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(urls), b.opts.MaxBatchSize)
	}
	return urls, nil
}

// Process обрабатывает пакет целиком и возвращает результаты в порядке входных URL.
// Ошибка возвращается только при невалидном запросе; ошибки отдельных URL
// попадают в соответствующие результаты.
func (b *BatchService) Process(ctx context.Context, req models.TranscriptRequest) (*models.TranscriptResponse, error) {
	urls, err := b.Validate(&req)
	if err != nil {
		return nil, err
	}

	// Пакет выполняется до конца даже при отключении клиента,
	// каждый сетевой вызов ограничен собственным таймаутом.
	ctx = context.WithoutCancel(ctx)

	opts := FetchOptions{
		Language:     req.Language,
		Denoise:      req.Denoise,
		Format:       req.Format,
		KeepNewlines: req.KeepNewlines,
	}

	results := make([]models.TranscriptResult, len(urls))
	var wg sync.WaitGroup
	wg.Add(len(urls))
	for i, u := range urls {
		go func(i int, u string) {
			defer wg.Done()
			results[i] = b.processURL(ctx, u, opts)
		}(i, u)
	}
	wg.Wait()

	resp := &models.TranscriptResponse{
		Results: results,
		Total:   len(results),
	}
	for _, r := range results {
		if r.Error == nil {
			resp.SuccessCount++
		} else {
			resp.ErrorCount++
		}
	}

	b.logger.Info("Batch processed",
		zap.Int("total", resp.Total),
		zap.Int("success", resp.SuccessCount),
		zap.Int("errors", resp.ErrorCount))

	return resp, nil
}

// processURL обрабатывает один URL. Паника внутри превращается в ошибку этого URL.
func (b *BatchService) processURL(ctx context.Context, rawURL string, opts FetchOptions) (res models.TranscriptResult) {
	res.URL = rawURL
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic while processing URL", zap.String("url", rawURL), zap.Any("panic", r))
			res.Transcript = nil
			res.Error = strPtr(Describe(fmt.Errorf("internal error: %v", r)))
		}
	}()

	id, ok := videoid.Resolve(rawURL)
	if !ok {
		res.Error = strPtr(MsgInvalidURL)
		return res
	}
	res.VideoID = strPtr(id)

	var (
		wg    sync.WaitGroup
		title string
		found bool
	)
	if b.titles != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Warn("Panic in title lookup", zap.String("video_id", id), zap.Any("panic", r))
				}
			}()
			if err := b.pool.Acquire(ctx, 1); err != nil {
				return
			}
			defer b.pool.Release(1)
			title, found = b.titles.Title(ctx, id)
		}()
	}

	fetched := b.fetch(ctx, id, opts)
	wg.Wait()

	if found {
		res.Title = strPtr(title)
	}
	if fetched.OK() {
		res.Transcript = fetched.Transcript
	} else {
		res.Error = strPtr(fetched.Error)
	}
	return res
}

func (b *BatchService) fetch(ctx context.Context, id string, opts FetchOptions) models.FetchResult {
	if err := b.pool.Acquire(ctx, 1); err != nil {
		return models.Failed(Describe(err))
	}
	defer b.pool.Release(1)
	return b.fetcher.Fetch(ctx, id, opts)
}

func strPtr(s string) *string {
	return &s
}
