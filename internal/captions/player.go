package captions

import (
	"fmt"
	"strings"
)

// playerResponse часть ytInitialPlayerResponse, нужная для поиска субтитров
type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer *struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" для автоматически созданных
}

func (t captionTrack) generated() bool {
	return t.Kind == "asr"
}

// playable возвращает ошибку, если видео нельзя воспроизвести
func (p *playerResponse) playable() error {
	if p.PlayabilityStatus == nil {
		return nil
	}
	status := p.PlayabilityStatus.Status
	if status == "" || status == "OK" {
		return nil
	}
	reason := strings.TrimSpace(p.PlayabilityStatus.Reason)
	if reason == "" {
		reason = strings.ToLower(status)
	}
	return fmt.Errorf("%s: %s (%s)", msgUnavailable, reason, status)
}

// captionTracks возвращает nil, если субтитры у видео отключены
func (p *playerResponse) captionTracks() []captionTrack {
	if p.Captions == nil || p.Captions.PlayerCaptionsTracklistRenderer == nil {
		return nil
	}
	tracks := p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil
	}
	return tracks
}

// pickTrack выбирает дорожку по приоритету языков: для каждого языка
// сначала ручные субтитры, затем автоматические.
func pickTrack(tracks []captionTrack, languages []string) (captionTrack, bool) {
	for _, lang := range languages {
		var generated *captionTrack
		for i := range tracks {
			if tracks[i].LanguageCode != lang {
				continue
			}
			if !tracks[i].generated() {
				return tracks[i], true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return captionTrack{}, false
}

func trackLanguages(tracks []captionTrack) []string {
	langs := make([]string, 0, len(tracks))
	for _, t := range tracks {
		langs = append(langs, t.LanguageCode)
	}
	return langs
}
