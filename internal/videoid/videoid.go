// Package videoid извлекает канонический 11-символьный идентификатор видео YouTube
// из произвольных ссылок: watch, youtu.be, embed, shorts, live и "голого" ID.
package videoid

import (
	"regexp"
	"strings"
)

// idChars описывает алфавит идентификатора видео
const idChars = `[a-zA-Z0-9_-]`

// end требует, чтобы идентификатор не продолжался дальше 11 символов
const end = `(?:[^a-zA-Z0-9_-]|$)`

// patterns проверяются по порядку, используется первое совпадение
var patterns = []*regexp.Regexp{
	// watch, включая m. и music. поддомены; v= может стоять в любом месте query
	regexp.MustCompile(`youtube\.com/watch/?\?(?:[^#]*&)?v=(` + idChars + `{11})` + end),
	regexp.MustCompile(`youtu\.be/(` + idChars + `{11})` + end),
	regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/(` + idChars + `{11})` + end),
	regexp.MustCompile(`youtube\.com/shorts/(` + idChars + `{11})` + end),
	regexp.MustCompile(`youtube\.com/live/(` + idChars + `{11})` + end),
	regexp.MustCompile(`^(` + idChars + `{11})$`),
}

// trackingParams параметры, которые удаляются до сопоставления
var trackingParams = map[string]struct{}{
	"si":      {},
	"feature": {},
	"fbclid":  {},
	"gclid":   {},
}

// Resolve возвращает идентификатор видео для ссылки raw.
// Второе значение false означает, что ссылка не распознана.
func Resolve(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	s = StripTracking(s)

	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

// StripTracking удаляет из query-строки рекламные и трекинговые параметры
// (si, feature, utm_*, fbclid, gclid), сохраняя порядок остальных.
func StripTracking(raw string) string {
	q := strings.IndexByte(raw, '?')
	if q < 0 {
		return raw
	}
	base, query := raw[:q], raw[q+1:]

	fragment := ""
	if h := strings.IndexByte(query, '#'); h >= 0 {
		fragment = query[h:]
		query = query[:h]
	}

	kept := make([]string, 0, 4)
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		key, _, _ := strings.Cut(part, "=")
		if isTracking(strings.ToLower(key)) {
			continue
		}
		kept = append(kept, part)
	}

	if len(kept) == 0 {
		return base + fragment
	}
	return base + "?" + strings.Join(kept, "&") + fragment
}

func isTracking(key string) bool {
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	_, ok := trackingParams[key]
	return ok
}
