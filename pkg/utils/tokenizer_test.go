package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "Stocks Up", []string{"stocks", "up"}},
		{"punctuation", "S&P 500: rally!", []string{"s", "p", "500", "rally"}},
		{"underscores and slashes", "memes/to_the_moon.jpg", []string{"memes", "to", "the", "moon", "jpg"}},
		{"empty", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"drops short words", "Stocks go up", []string{"stocks"}},
		{"drops stop words", "The bulls are back with a vengeance", []string{"bulls", "back", "vengeance"}},
		{"keeps digits", "Nasdaq 100 record", []string{"nasdaq", "100", "record"}},
		{"file extension is noise", "bears_in_control.jpg", []string{"bears", "control"}},
		{"nothing significant", "Up, up and away", []string{"away"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestUniqueTokens(t *testing.T) {
	got := UniqueTokens("bulls_on_parade", "Bulls marching in a parade downtown")
	assert.Equal(t, []string{"bulls", "parade", "marching", "downtown"}, got)
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("jpg"))
	assert.False(t, IsStopWord("rally"))
}
