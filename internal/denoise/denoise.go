// Package denoise очищает текст автоматических субтитров от междометий,
// служебных пометок вида [음악] и подряд идущих повторов.
package denoise

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
)

// fillers закрытый словарь междометий, которые удаляются, только если строка состоит из них целиком
var fillers = map[string]struct{}{
	"어": {}, "음": {}, "그": {}, "아": {}, "네": {}, "예": {}, "에": {}, "으": {}, "흠": {},
	"어어": {}, "음음": {}, "아아": {}, "네네": {}, "예예": {},
}

// IsFiller сообщает, является ли строка междометием из словаря
func IsFiller(s string) bool {
	_, ok := fillers[s]
	return ok
}

// IsAnnotation сообщает, обернута ли строка целиком в квадратные скобки ([music], [박수])
func IsAnnotation(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

// clean нормализует строку и сообщает, нужно ли ее сохранить.
// prev: последняя сохраненная строка.
func clean(s, prev string) (string, bool) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" || IsFiller(s) || IsAnnotation(s) || s == prev {
		return s, false
	}
	return s, true
}

// Text очищает многострочный текст. Повтор удаляется только если совпадает
// с непосредственно предыдущей сохраненной строкой.
func Text(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	prev := ""

	for _, line := range lines {
		s, ok := clean(line, prev)
		if !ok {
			continue
		}
		kept = append(kept, s)
		prev = s
	}

	return strings.Join(kept, "\n")
}

// Entries применяет те же правила к записям субтитров. Записи, текст которых
// после очистки пуст, удаляются; тайминги оставшихся не меняются.
func Entries(entries []models.CaptionEntry) []models.CaptionEntry {
	kept := make([]models.CaptionEntry, 0, len(entries))
	prev := ""

	for _, e := range entries {
		s, ok := clean(e.Text, prev)
		if !ok {
			continue
		}
		kept = append(kept, models.CaptionEntry{
			Text:     s,
			Start:    e.Start,
			Duration: e.Duration,
		})
		prev = s
	}

	return kept
}
