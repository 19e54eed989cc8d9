package captions

import (
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
)

var tagRE = regexp.MustCompile(`<[^>]*>`)

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText разбирает timedtext XML в записи субтитров.
// Пустые элементы пропускаются, как и в самом плеере.
func parseTimedText(body []byte) ([]models.CaptionEntry, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]models.CaptionEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := cleanText(line.Text)
		if text == "" {
			continue
		}
		entries = append(entries, models.CaptionEntry{
			Text:     text,
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
		})
	}
	return entries, nil
}

// cleanText снимает двойное HTML-экранирование и inline-теги (<font>, <i>)
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = tagRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
