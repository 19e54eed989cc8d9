package service

import (
	"strings"
	"unicode/utf8"
)

// FailureKind категория ошибки получения субтитров
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureNoCaptions
	FailureDisabled
	FailureUnavailable
)

// Сообщения для пользователя
const (
	MsgInvalidURL  = "유효하지 않은 YouTube URL입니다."
	MsgNoCaptions  = "자막을 찾을 수 없습니다."
	MsgDisabled    = "이 영상은 자막이 비활성화되어 있습니다."
	MsgUnavailable = "영상을 찾을 수 없습니다."
	MsgGeneric     = "자막을 가져오지 못했습니다"
)

// maxDetailRunes ограничивает длину диагностического текста в ответе
const maxDetailRunes = 200

// Classify относит текст ошибки источника к категории.
// Сопоставление по подстрокам: тексты ошибок YouTube не являются контрактом,
// поэтому нераспознанная ошибка всегда попадает в FailureUnknown.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "no transcripts"), strings.Contains(msg, "no caption"):
		return FailureNoCaptions
	case strings.Contains(msg, "disabled") && mentionsCaptions(msg):
		return FailureDisabled
	case strings.Contains(msg, "unavailable"):
		return FailureUnavailable
	default:
		return FailureUnknown
	}
}

func mentionsCaptions(msg string) bool {
	return strings.Contains(msg, "subtitle") || strings.Contains(msg, "caption") || strings.Contains(msg, "transcript")
}

// Final сообщает, что повторять запрос другим клиентом бессмысленно:
// у видео нет субтитров вообще или они отключены.
func (k FailureKind) Final() bool {
	return k == FailureNoCaptions || k == FailureDisabled
}

// Describe строит сообщение для пользователя
func Describe(err error) string {
	switch Classify(err) {
	case FailureNoCaptions:
		return MsgNoCaptions + " (" + truncate(err.Error(), maxDetailRunes) + ")"
	case FailureDisabled:
		return MsgDisabled
	case FailureUnavailable:
		return MsgUnavailable
	default:
		if err == nil {
			return MsgGeneric
		}
		return MsgGeneric + ": " + truncate(err.Error(), maxDetailRunes)
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
