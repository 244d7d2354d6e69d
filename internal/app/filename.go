package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFilenameBytes = 255

var (
	illegalChars     = regexp.MustCompile(`[/?<>\\:*|"]`)
	controlChars     = regexp.MustCompile(`[\x00-\x1f\x80-\x9f]`)
	reservedNames    = regexp.MustCompile(`^\.+$`)
	windowsReserved  = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	windowsTrailing  = regexp.MustCompile(`[. ]+$`)
	whitespaceRepeat = regexp.MustCompile(`\s{2,}`)
)

// SanitizeFilename strips characters that are illegal in file names on common
// filesystems. The result may be empty.
func SanitizeFilename(name string) string {
	name = illegalChars.ReplaceAllString(name, "")
	name = controlChars.ReplaceAllString(name, "")
	name = whitespaceRepeat.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if reservedNames.MatchString(name) || windowsReserved.MatchString(name) {
		return ""
	}
	return windowsTrailing.ReplaceAllString(name, "")
}

// BuildFilename derives "<title>.<container>" with the title sanitized and
// truncated so the extension always survives.
func BuildFilename(title, container string) string {
	ext := SanitizeFilename(container)
	if ext == "" {
		ext = ContainerMP4
	}

	base := SanitizeFilename(title)
	if base == "" {
		base = "video"
	}

	limit := maxFilenameBytes - len(ext) - 1
	if len(base) > limit {
		base = truncateUTF8(base, limit)
		base = windowsTrailing.ReplaceAllString(base, "")
	}

	return base + "." + ext
}

func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
