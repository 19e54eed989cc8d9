package captions

import "fmt"

// Тексты ошибок источника. Сервисный слой классифицирует ошибки по этим фразам,
// поэтому менять их нужно вместе с правилами классификации.
const (
	msgDisabled        = "subtitles are disabled for this video"
	msgNoTranscript    = "no transcripts were found for any of the requested language codes"
	msgUnavailable     = "the video is unavailable"
	msgTooManyRequests = "too many requests: YouTube is blocking requests from this IP"
)

// StatusError ответ YouTube с неожиданным HTTP-статусом
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}
