package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
)

// mockSource реализует CaptionSource для тестов
type mockSource struct {
	name      string
	calls     atomic.Int32
	fetchFunc func(ctx context.Context, videoID string, languages []string) ([]models.CaptionEntry, error)
}

func (m *mockSource) Name() string {
	return m.name
}

func (m *mockSource) Fetch(ctx context.Context, videoID string, languages []string) ([]models.CaptionEntry, error) {
	m.calls.Add(1)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, videoID, languages)
	}
	return nil, errors.New("not implemented")
}

func failing(err error) func(context.Context, string, []string) ([]models.CaptionEntry, error) {
	return func(context.Context, string, []string) ([]models.CaptionEntry, error) {
		return nil, err
	}
}

func returning(entries ...models.CaptionEntry) func(context.Context, string, []string) ([]models.CaptionEntry, error) {
	return func(context.Context, string, []string) ([]models.CaptionEntry, error) {
		return entries, nil
	}
}

var sampleEntries = []models.CaptionEntry{
	{Text: "[음악]", Start: 0, Duration: 2},
	{Text: "안녕하세요", Start: 2, Duration: 1.5},
	{Text: "안녕하세요", Start: 3.5, Duration: 1},
	{Text: "네", Start: 4.5, Duration: 0.5},
	{Text: "오늘은  Go\n이야기", Start: 5, Duration: 3},
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"ko", "en"}, Languages("ko"))
	assert.Equal(t, []string{"en", "ko"}, Languages("en"))
	assert.Equal(t, []string{"ja"}, Languages("ja"))
}

func TestFetchFallback(t *testing.T) {
	tests := []struct {
		name           string
		plainErr       error
		wantCookieCall int32
		wantOK         bool
		wantError      string
	}{
		{
			name:           "Plain client succeeds",
			plainErr:       nil,
			wantCookieCall: 0,
			wantOK:         true,
		},
		{
			name:           "Access error falls back once",
			plainErr:       errors.New("too many requests: YouTube is blocking requests from this IP"),
			wantCookieCall: 1,
			wantOK:         true,
		},
		{
			name:           "Unavailable falls back",
			plainErr:       errors.New("the video is unavailable: Sign in to confirm you're not a bot (LOGIN_REQUIRED)"),
			wantCookieCall: 1,
			wantOK:         true,
		},
		{
			name:           "Disabled short-circuits",
			plainErr:       errors.New("subtitles are disabled for this video"),
			wantCookieCall: 0,
			wantError:      MsgDisabled,
		},
		{
			name:           "No captions short-circuits",
			plainErr:       errors.New("no transcripts were found for any of the requested language codes [ko en]"),
			wantCookieCall: 0,
			wantError:      MsgNoCaptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := &mockSource{name: "plain", fetchFunc: returning(sampleEntries...)}
			if tt.plainErr != nil {
				plain.fetchFunc = failing(tt.plainErr)
			}
			cookie := &mockSource{name: "cookie", fetchFunc: returning(models.CaptionEntry{Text: "from cookie"})}

			svc := NewTranscriptService(zap.NewNop(), time.Second, plain, cookie)
			res := svc.Fetch(context.Background(), "dQw4w9WgXcQ", FetchOptions{Language: "ko", Format: models.FormatText})

			assert.Equal(t, int32(1), plain.calls.Load())
			assert.Equal(t, tt.wantCookieCall, cookie.calls.Load())
			assert.Equal(t, tt.wantOK, res.OK())
			if tt.wantOK {
				assert.NotNil(t, res.Transcript)
				assert.Empty(t, res.Error)
			} else {
				assert.Nil(t, res.Transcript)
				assert.True(t, strings.HasPrefix(res.Error, tt.wantError), res.Error)
			}
		})
	}
}

func TestFetchAllSourcesFail(t *testing.T) {
	plain := &mockSource{name: "plain", fetchFunc: failing(errors.New("connection reset by peer"))}
	cookie := &mockSource{name: "cookie", fetchFunc: failing(errors.New("the video is unavailable: private video"))}

	svc := NewTranscriptService(zap.NewNop(), time.Second, plain, cookie)
	res := svc.Fetch(context.Background(), "dQw4w9WgXcQ", FetchOptions{Language: "ko"})

	assert.False(t, res.OK())
	assert.Nil(t, res.Transcript)
	// классифицируется последняя ошибка
	assert.Equal(t, MsgUnavailable, res.Error)
}

func TestFetchPassesLanguages(t *testing.T) {
	var got []string
	src := &mockSource{name: "plain", fetchFunc: func(_ context.Context, _ string, langs []string) ([]models.CaptionEntry, error) {
		got = langs
		return nil, nil
	}}

	svc := NewTranscriptService(zap.NewNop(), 0, src)
	res := svc.Fetch(context.Background(), "dQw4w9WgXcQ", FetchOptions{Language: "en", Format: models.FormatStructured})

	assert.True(t, res.OK())
	assert.Equal(t, []models.CaptionEntry{}, res.Transcript)
	assert.Equal(t, []string{"en", "ko"}, got)
}

func TestFetchTimeout(t *testing.T) {
	src := &mockSource{name: "plain", fetchFunc: func(ctx context.Context, _ string, _ []string) ([]models.CaptionEntry, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	svc := NewTranscriptService(zap.NewNop(), 20*time.Millisecond, src)
	res := svc.Fetch(context.Background(), "dQw4w9WgXcQ", FetchOptions{Language: "ko"})

	assert.False(t, res.OK())
	assert.Contains(t, res.Error, "deadline exceeded")
}

func TestFetchRecoversPanic(t *testing.T) {
	src := &mockSource{name: "plain", fetchFunc: func(context.Context, string, []string) ([]models.CaptionEntry, error) {
		panic("boom")
	}}

	svc := NewTranscriptService(zap.NewNop(), 0, src)
	res := svc.Fetch(context.Background(), "dQw4w9WgXcQ", FetchOptions{Language: "ko"})

	assert.False(t, res.OK())
	assert.Contains(t, res.Error, "boom")
}

func TestFetchNoSources(t *testing.T) {
	res := NewTranscriptService(zap.NewNop(), 0).Fetch(context.Background(), "dQw4w9WgXcQ", FetchOptions{})
	assert.False(t, res.OK())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		opts FetchOptions
		want any
	}{
		{
			name: "Text joined with spaces",
			opts: FetchOptions{Format: models.FormatText},
			want: "[음악] 안녕하세요 안녕하세요 네 오늘은 Go 이야기",
		},
		{
			name: "Text keeps newlines",
			opts: FetchOptions{Format: models.FormatText, KeepNewlines: true},
			want: "[음악]\n안녕하세요\n안녕하세요\n네\n오늘은  Go\n이야기",
		},
		{
			name: "Text denoised",
			opts: FetchOptions{Format: models.FormatText, Denoise: true},
			want: "안녕하세요 오늘은 Go 이야기",
		},
		{
			name: "Text denoised with newlines",
			opts: FetchOptions{Format: models.FormatText, Denoise: true, KeepNewlines: true},
			want: "안녕하세요\n오늘은  Go\n이야기",
		},
		{
			name: "Structured as is",
			opts: FetchOptions{Format: models.FormatStructured},
			want: sampleEntries,
		},
		{
			name: "Structured denoised keeps timings",
			opts: FetchOptions{Format: models.FormatStructured, Denoise: true},
			want: []models.CaptionEntry{
				{Text: "안녕하세요", Start: 2, Duration: 1.5},
				{Text: "오늘은  Go\n이야기", Start: 5, Duration: 3},
			},
		},
		{
			name: "Json alias",
			opts: FetchOptions{Format: models.FormatJSON, Denoise: true},
			want: []models.CaptionEntry{
				{Text: "안녕하세요", Start: 2, Duration: 1.5},
				{Text: "오늘은  Go\n이야기", Start: 5, Duration: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Render(sampleEntries, tt.opts))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{errors.New("no transcripts were found for any of the requested language codes"), FailureNoCaptions},
		{errors.New("No captions in player response"), FailureNoCaptions},
		{errors.New("Subtitles are disabled for this video"), FailureDisabled},
		{errors.New("the video is unavailable: Playback on other websites has been disabled"), FailureUnavailable},
		{errors.New("Video unavailable"), FailureUnavailable},
		{errors.New("connection refused"), FailureUnknown},
		{nil, FailureUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
}

func TestDescribe(t *testing.T) {
	long := strings.Repeat("가", 500)

	noCaptions := Describe(errors.New("no transcripts were found: " + long))
	assert.True(t, strings.HasPrefix(noCaptions, MsgNoCaptions+" (no transcripts were found"))
	assert.LessOrEqual(t, len([]rune(noCaptions)), len([]rune(MsgNoCaptions))+maxDetailRunes+4)

	generic := Describe(errors.New("dial tcp: i/o timeout"))
	assert.Equal(t, MsgGeneric+": dial tcp: i/o timeout", generic)

	assert.Equal(t, MsgDisabled, Describe(errors.New("subtitles are disabled for this video")))
	assert.Equal(t, MsgUnavailable, Describe(errors.New("the video is unavailable: private")))
}
