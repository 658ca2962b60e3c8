package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// QRFileName returns "<unix-millis>-<slug><ext>" for an uploaded QR image.
func QRFileName(original string, now time.Time) string {
	base := filepath.Base(original)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "qr-code"
	}
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), name, ext)
}

// PhotoFileName returns "photo_<eventId>_<unix-millis>.jpg".
func PhotoFileName(eventID int64, now time.Time) string {
	return fmt.Sprintf("photo_%d_%d.jpg", eventID, now.UnixMilli())
}
