package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"ascii", "abc", []string{"a", "b", "c"}},
		{"precomposed", "çare", []string{"ç", "a", "r", "e"}},
		{"combining mark", "e\u0301t", []string{"e\u0301", "t"}},
		{"flag", "a\U0001F1F9\U0001F1F7b", []string{"a", "\U0001F1F9\U0001F1F7", "b"}},
		{"zwj emoji", "\U0001F469\u200D\U0001F4BB!", []string{"\U0001F469\u200D\U0001F4BB", "!"}},
		{"crlf", "a\r\nb", []string{"a", "\r\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Graphemes(tt.input))
			assert.Equal(t, len(tt.expected), Length(tt.input))
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"identical", "hello", "hello", true},
		{"ascii case", "Hello", "hELLO", true},
		{"turkish upper", "ÇARE", "çare", true},
		{"german eszett", "STRASSE", "straße", true},
		{"greek sigma", "ΣΟΦΟΣ", "σοφος", true},
		{"different", "hello", "world", false},
		{"empty vs text", "", "a", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EqualFold(tt.a, tt.b))
		})
	}
}

func TestEqualFoldChars(t *testing.T) {
	assert.True(t, EqualFoldChars(Graphemes("WoRLD"), Graphemes("world")))
	assert.False(t, EqualFoldChars(Graphemes("word"), Graphemes("world")))
	assert.True(t, EqualFoldChars(nil, nil))
}

func BenchmarkGraphemes(b *testing.B) {
	text := "The quick brown fox jumps over the lazy dog, çok güzel 👩‍💻"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Graphemes(text)
	}
}

func BenchmarkEqualFold(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EqualFold("Multi-language Lexicon", "MULTI-LANGUAGE LEXICON")
	}
}
