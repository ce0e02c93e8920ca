package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator([]string{"badger", "snake"}, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Single word keeps spacing",
			input:    "Added badger",
			expected: "Added ******",
			words:    []string{"badger"},
		},
		{
			name:     "Repeated word",
			input:    "Maps: badger, badger",
			expected: "Maps: ******, ******",
			words:    []string{"badger", "badger"},
		},
		{
			name:     "Leet speak and inner punctuation",
			input:    "Added B.4.d.g.3r",
			expected: "Added **********",
			words:    []string{"badger"},
		},
		{
			name:     "Uppercase with separators",
			input:    "S-N-A-K-E on de_dust",
			expected: "********* on de_dust",
			words:    []string{"snake"},
		},
		{
			name:     "Clean reply",
			input:    "Invalid format: !add <map> <url>",
			expected: "Invalid format: !add <map> <url>",
			words:    nil,
		},
		{
			name:     "Empty reply",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.censor(tt.input)
			req.Equal(tt.expected, content)
			req.Equal(tt.words, words)
			req.Equal(tt.expected, mod.Censor(tt.input))
		})
	}
}

func TestModerator_NoWordsPassesThrough(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a dictionary that normalizes to nothing
	mod, err := NewModerator([]string{"...", "", " "}, replacementChar, log)
	req.NoError(err)

	// Then every reply is left untouched
	req.Equal("Maps: badger", mod.Censor("Maps: badger"))
}
