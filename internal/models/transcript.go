package models

// CaptionEntry представляет одну строку субтитров с таймингом
type CaptionEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// FetchResult результат получения транскрипта для одного видео.
// Заполнено ровно одно из полей: Transcript или Error.
type FetchResult struct {
	Transcript any
	Error      string
}

// Failed создает результат с ошибкой
func Failed(msg string) FetchResult {
	return FetchResult{Error: msg}
}

// OK сообщает, что транскрипт получен без ошибки
func (r FetchResult) OK() bool {
	return r.Error == ""
}
