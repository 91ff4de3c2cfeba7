// Package logger provides structured logging for Texter.
package logger

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Attribute keys that carry document buffer text. Buffers belong to
// the user; a log line gets a bounded preview and the length, never
// the whole thing.
var contentKeys = []string{
	"content",
	"buffer",
	"text",
}

// MaxContentPreview is the longest buffer excerpt a log line may carry.
const MaxContentPreview = 32

// truncateContent replaces buffer-bearing attributes with a preview
// plus length marker.
func truncateContent(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString && isContentKey(a.Key) {
		return slog.String(a.Key, ContentPreview(a.Value.String()))
	}

	// Handle nested groups recursively.
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = truncateContent(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// isContentKey reports whether a key names a document buffer.
func isContentKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, k := range contentKeys {
		if keyLower == k || strings.HasSuffix(keyLower, "_"+k) {
			return true
		}
	}
	return false
}

// ContentPreview returns a log-safe representation of buffer text:
// up to MaxContentPreview runes followed by the total length.
func ContentPreview(s string) string {
	n := utf8.RuneCountInString(s)
	if n <= MaxContentPreview {
		return fmt.Sprintf("%q (%d chars)", s, n)
	}

	runes := []rune(s)
	return fmt.Sprintf("%q... (%d chars)", string(runes[:MaxContentPreview]), n)
}
