package validation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContestID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple id", "summer25", true},
		{"with hyphens", "summer-2025-remix", true},
		{"minimum length", "abc", true},
		{"single alphanumeric", "a", true},
		{"single digit", "7", true},
		{"maximum length", strings.Repeat("a", 30), true},
		{"empty", "", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 31), false},
		{"leading hyphen", "-abc", false},
		{"trailing hyphen", "abc-", false},
		{"double hyphen prefix", "--x", false},
		{"consecutive hyphens", "x--y", false},
		{"illegal characters", "summer 2025", false},
		{"unicode", "été-fest", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContestID(tt.input))
		})
	}
}

func TestSongName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain name", "Ocean", true},
		{"with punctuation", "Don't Stop (Remix) #2", true},
		{"needs trimming", "  Ocean  ", true},
		{"max length", strings.Repeat("x", 100), true},
		{"accented name", strings.Repeat("é", 60), true},
		{"cjk at max length", strings.Repeat("歌", 100), true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("x", 101), false},
		{"too long in runes", strings.Repeat("é", 101), false},
		{"control character", "Oce\x01an", false},
		{"delete character", "Ocean\x7f", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SongName(tt.input))
		})
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"https", "https://suno.com/song/abc123", true},
		{"http", "http://youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"with port", "https://soundcloud.com:443/artist/track", true},
		{"empty", "", false},
		{"no scheme", "suno.com/song/abc123", false},
		{"ftp scheme", "ftp://suno.com/song", false},
		{"javascript smuggled in query", "https://x.com/?u=javascript:alert(1)", false},
		{"data uri", "data:text/html;base64,xxxx", false},
		{"null byte", "https://x.com/%00", false},
		{"script tag", "https://x.com/<script>alert(1)</script>", false},
		{"event handler", "https://x.com/?onerror=alert(1)", false},
		{"backslash escape", `https://x.com/\x41`, false},
		{"no host", "https:///path", false},
		{"hostile host charset", "https://exa_mple.com/x", false},
		{"too long", "https://x.com/" + strings.Repeat("a", 2048), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.input))
		})
	}
}

func TestPlatformList(t *testing.T) {
	valid := []string{"Suno", "Udio", "YouTube", "SoundCloud"}

	t.Run("parses and lowercases", func(t *testing.T) {
		got := PlatformList("Suno, YouTube", valid)
		require.Equal(t, []string{"suno", "youtube"}, got)
	})

	t.Run("deduplicates preserving order", func(t *testing.T) {
		got := PlatformList("suno,youtube,suno", valid)
		require.Equal(t, []string{"suno", "youtube"}, got)
	})

	t.Run("unknown platform rejects whole list", func(t *testing.T) {
		assert.Nil(t, PlatformList("suno,napster", valid))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, PlatformList("", valid))
		assert.Nil(t, PlatformList("  ", valid))
	})
}

func TestCleanUserInput(t *testing.T) {
	assert.Equal(t, "hello world", CleanUserInput("  hello   world  "))
	assert.Equal(t, "abc", CleanUserInput("a\u200bb\u200cc"))
	assert.Equal(t, "", CleanUserInput(""))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10, "..."))
	assert.Equal(t, "long te...", TruncateText("long text here", 10, "..."))

	// Counted and cut in runes, never mid-character.
	assert.Equal(t, strings.Repeat("é", 10), TruncateText(strings.Repeat("é", 10), 10, "..."))
	got := TruncateText(strings.Repeat("é", 20), 10, "...")
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
	assert.True(t, utf8.ValidString(got))
}
