package storage

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxNicknameLen = 40

// NewKey builds "<unix-millis>-<nickname><ext>" for a stored file.
func NewKey(now time.Time, nickname, fileName, mimeType string) string {
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), NormalizeNickname(nickname), extension(fileName, mimeType))
}

// NormalizeNickname strips diacritics, turns whitespace into underscores and lower-cases.
// Characters outside [a-z0-9_-] are dropped. Falls back to "file".
func NormalizeNickname(nickname string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, nickname)
	if err != nil {
		stripped = nickname
	}

	var b strings.Builder
	for _, field := range strings.Fields(strings.ToLower(stripped)) {
		if b.Len() > 0 {
			b.WriteByte('_')
		}
		for _, r := range field {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
				b.WriteRune(r)
			}
		}
	}

	out := strings.Trim(b.String(), "_")
	if len(out) > maxNicknameLen {
		out = out[:maxNicknameLen]
	}
	if out == "" {
		return "file"
	}
	return out
}

func extension(fileName, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(fileName)); ext != "" && len(ext) <= 6 {
		return ext
	}
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
