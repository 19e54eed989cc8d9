package denoise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InQaaaaGit/yt_transcript.git/internal/models"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Non-adjacent repeat kept", input: "hi\nthere\nhi", want: "hi\nthere\nhi"},
		{name: "Adjacent repeat collapsed", input: "hi\nhi\nthere", want: "hi\nthere"},
		{name: "Filler line removed", input: "안녕하세요\n네\n반갑습니다", want: "안녕하세요\n반갑습니다"},
		{name: "Doubled filler removed", input: "음음\n시작할게요", want: "시작할게요"},
		{name: "Filler inside sentence kept", input: "네 맞아요", want: "네 맞아요"},
		{name: "Annotation removed", input: "[음악]\n노래 시작\n[music]", want: "노래 시작"},
		{name: "Partial brackets kept", input: "[박수] 감사합니다", want: "[박수] 감사합니다"},
		{name: "Empty and blank lines dropped", input: "\n  \nfirst\n\n\nsecond\n", want: "first\nsecond"},
		{name: "Lines trimmed", input: "  a  \n\tb\t", want: "a\nb"},
		{name: "Duplicate across removed noise collapsed", input: "hi\n[music]\nhi", want: "hi"},
		{name: "Empty input", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"hi\nhi\nthere\nhi",
		"어\n[음악]\n안녕\n안녕\n 안녕 \n음\n다음",
		"가\n가\n가",
		"",
		"   \n\n",
	}

	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestTextNormalizesDecomposedHangul(t *testing.T) {
	// "네" в разложенной форме (ᄂ + ᅦ)
	decomposed := "\u1102\u1166"
	assert.Equal(t, "다음", Text(decomposed+"\n다음"))
}

func TestEntries(t *testing.T) {
	input := []models.CaptionEntry{
		{Text: "[음악]", Start: 0, Duration: 1.5},
		{Text: " 안녕하세요 ", Start: 1.5, Duration: 2},
		{Text: "안녕하세요", Start: 3.5, Duration: 1},
		{Text: "음", Start: 4.5, Duration: 0.5},
		{Text: "오늘은", Start: 5, Duration: 1.25},
		{Text: "", Start: 6.25, Duration: 0.5},
		{Text: "안녕하세요", Start: 6.75, Duration: 2},
	}

	got := Entries(input)
	require.Len(t, got, 3)

	assert.Equal(t, models.CaptionEntry{Text: "안녕하세요", Start: 1.5, Duration: 2}, got[0])
	assert.Equal(t, models.CaptionEntry{Text: "오늘은", Start: 5, Duration: 1.25}, got[1])
	assert.Equal(t, models.CaptionEntry{Text: "안녕하세요", Start: 6.75, Duration: 2}, got[2])
}

func TestEntriesDoesNotMutateInput(t *testing.T) {
	input := []models.CaptionEntry{{Text: "  a  ", Start: 1, Duration: 2}}
	_ = Entries(input)
	assert.Equal(t, "  a  ", input[0].Text)
}

func TestEntriesAllNoise(t *testing.T) {
	got := Entries([]models.CaptionEntry{{Text: "네"}, {Text: "[박수]"}, {Text: " "}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
