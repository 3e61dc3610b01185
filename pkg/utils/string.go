package utils

const ellipsis = "…"

// Truncate shortens s to at most maxLen runes. A cut string ends in an
// ellipsis, which counts toward maxLen. Pose names carry diacritics, so the
// cut never lands inside a multi-byte rune.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + ellipsis
}
