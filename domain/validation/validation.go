// Package validation holds the pure input validators used by the admission
// pipeline and the contest lifecycle. No I/O, no state; every function is a
// boolean predicate and callers own the user-facing messages.
package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinContestIDLength = 3
	MaxContestIDLength = 30
	MaxSongNameLength  = 100
	MaxURLLength       = 2048
	MaxSubmissionLimit = 10
)

var (
	contestIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*[A-Za-z0-9]$`)
	singleAlnum      = regexp.MustCompile(`^[A-Za-z0-9]$`)
	controlChars     = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	hostPattern      = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
)

// suspiciousPatterns is a defense-in-depth denylist, not a sanitizer. It blocks
// the obvious scheme smuggling and markup injection attempts; anything beyond
// that is the presentation layer's escaping problem.
var suspiciousPatterns = []string{
	"javascript:",
	"data:",
	"file:",
	"ftp:",
	`\x`,
	"%00",
	"<script",
	"onclick=",
	"onerror=",
}

// ContestID reports whether s is a valid contest identifier: 3-30 chars of
// alphanumerics and hyphens, no leading/trailing hyphen, no consecutive
// hyphens. A single alphanumeric character is also accepted.
func ContestID(s string) bool {
	if s == "" {
		return false
	}
	if len(s) == 1 {
		return singleAlnum.MatchString(s)
	}
	if len(s) < MinContestIDLength || len(s) > MaxContestIDLength {
		return false
	}
	if !contestIDPattern.MatchString(s) {
		return false
	}
	return !strings.Contains(s, "--")
}

// SongName reports whether s, after trimming, is 1-100 characters with no
// control characters. Length is counted in runes so accented and CJK titles
// are not penalized for their byte width.
func SongName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > MaxSongNameLength {
		return false
	}
	return !controlChars.MatchString(s)
}

// URL reports whether s is an http(s) URL with a sane host and none of the
// denylisted substrings anywhere in it.
func URL(s string) bool {
	if s == "" || len(s) > MaxURLLength {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	if !hostPattern.MatchString(u.Hostname()) {
		return false
	}

	lower := strings.ToLower(s)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	return true
}

// PlatformList parses a comma-separated platform list, lowercases and
// de-duplicates it preserving order, and checks every entry against valid.
// Returns nil when the input is empty or contains an unknown platform.
func PlatformList(platforms string, valid []string) []string {
	if strings.TrimSpace(platforms) == "" {
		return nil
	}

	validSet := make(map[string]struct{}, len(valid))
	for _, v := range valid {
		validSet[strings.ToLower(v)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, p := range strings.Split(platforms, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if _, ok := validSet[p]; !ok {
			return nil
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// zeroWidthReplacer strips the zero-width characters commonly used to sneak
// past display-length checks.
var zeroWidthReplacer = strings.NewReplacer(
	"\u200b", "", // zero-width space
	"\u200c", "", // zero-width non-joiner
	"\u200d", "", // zero-width joiner
	"\ufeff", "", // zero-width no-break space
)

// CleanUserInput normalizes free-form text for storage: zero-width characters
// removed, whitespace runs collapsed, ends trimmed.
func CleanUserInput(text string) string {
	if text == "" {
		return ""
	}
	text = zeroWidthReplacer.Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

// TruncateText cuts text to maxLength runes, appending suffix when it had to
// cut. Cutting on rune boundaries keeps the result valid UTF-8.
func TruncateText(text string, maxLength int, suffix string) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	suffixLen := utf8.RuneCountInString(suffix)
	if maxLength <= suffixLen {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-suffixLen]) + suffix
}
