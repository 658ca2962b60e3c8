package storage

import (
	"encoding/base64"
	"regexp"
	"strings"

	"travel-ticket-api/core/errors"
)

const (
	MsgInvalidImageFormat = "Invalid image format"
	MsgInvalidBase64      = "Invalid base64 data"
	MsgEmptyImage         = "Empty image data"
)

var dataURLPattern = regexp.MustCompile(`^data:([a-zA-Z0-9]+/[a-zA-Z0-9-.+]+);base64,`)

// DecodeDataURL validates a "data:<mime>;base64,<payload>" string and returns
// the MIME type and decoded bytes. Checks run in a fixed order so the error
// names the first one that failed.
func DecodeDataURL(s string) (string, []byte, error) {
	if !strings.Contains(s, "base64") {
		return "", nil, errors.Validation(MsgInvalidImageFormat)
	}

	m := dataURLPattern.FindStringSubmatch(s)
	if m == nil {
		return "", nil, errors.Validation(MsgInvalidImageFormat)
	}
	mimeType := m[1]

	idx := strings.LastIndex(s, ";base64,")
	payload := strings.TrimSpace(s[idx+len(";base64,"):])
	if payload == "" {
		return "", nil, errors.Validation(MsgInvalidBase64)
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return "", nil, errors.NewAppError(errors.ErrInvalidInput, MsgInvalidBase64, err)
	}
	if len(data) == 0 {
		return "", nil, errors.Validation(MsgEmptyImage)
	}

	return mimeType, data, nil
}

// decodeBase64 accepts padded and unpadded input and ignores ASCII
// whitespace such as line breaks inside the payload.
func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, payload)
	if data, err := base64.StdEncoding.DecodeString(payload); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
}
