package services

import (
	"strings"
	"time"

	"github.com/clipforge/clipforge/internal/common"
)

func nowUTC() time.Time { return time.Now().UTC() }

var videoMimeTypes = map[string]struct{}{
	"video/mp4":        {},
	"video/quicktime":  {},
	"video/webm":       {},
	"video/x-msvideo":  {},
	"video/x-matroska": {},
}

var audioMimeTypes = map[string]struct{}{
	"audio/mpeg":  {},
	"audio/mp4":   {},
	"audio/aac":   {},
	"audio/wav":   {},
	"audio/x-wav": {},
	"audio/flac":  {},
	"audio/ogg":   {},
}

// normalizeMime strips any parameters ("video/mp4; codecs=...") and
// lowercases the media type.
func normalizeMime(contentType string) string {
	mime, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mime))
}

func validateUpload(contentType string, size, maxSize int64, allowed map[string]struct{}) (string, error) {
	mime := normalizeMime(contentType)
	if _, ok := allowed[mime]; !ok {
		return "", common.ErrorUnsupportedMediaType
	}
	if size <= 0 || size > maxSize {
		return "", common.ErrorFileTooLarge
	}
	return mime, nil
}
