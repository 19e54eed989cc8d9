package models

// Поддерживаемые форматы вывода транскрипта
const (
	FormatText       = "text"
	FormatStructured = "structured"
	// FormatJSON оставлен для совместимости со старыми клиентами, эквивалентен FormatStructured
	FormatJSON = "json"
)

// TranscriptRequest представляет тело запроса на пакетное получение субтитров
type TranscriptRequest struct {
	URLs         []string `json:"urls"`
	Language     string   `json:"language"`
	Denoise      bool     `json:"denoise"`
	Format       string   `json:"format"`
	KeepNewlines bool     `json:"keep_newlines"`
}

// TranscriptResult представляет результат обработки одного URL из пакета.
// Transcript содержит либо строку, либо []CaptionEntry в зависимости от формата.
type TranscriptResult struct {
	URL        string  `json:"url"`
	VideoID    *string `json:"video_id"`
	Title      *string `json:"title"`
	Transcript any     `json:"transcript"`
	Error      *string `json:"error"`
}

// TranscriptResponse представляет ответ на пакетный запрос
type TranscriptResponse struct {
	Results      []TranscriptResult `json:"results"`
	Total        int                `json:"total"`
	SuccessCount int                `json:"success_count"`
	ErrorCount   int                `json:"error_count"`
}

// ErrorResponse возвращается клиенту при ошибке валидации запроса
type ErrorResponse struct {
	Error string `json:"error"`
}
