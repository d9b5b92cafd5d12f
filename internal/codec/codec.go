package codec

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/outlink-dev/outlink/internal/domain"
)

// ErrorCode identifies a decode failure class. Each code maps to a
// distinct localized message; the decode aborts at the first failing
// step.
type ErrorCode string

const (
	ErrMissingParams    ErrorCode = "missing_parameters"
	ErrInvalidParams    ErrorCode = "invalid_parameters"
	ErrTargetNotAllowed ErrorCode = "target_not_allowed"
)

// DecodeError is a fully-handled boundary error: it is rendered to the
// user and never propagated further.
type DecodeError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

var messages = map[ErrorCode]map[string]string{
	ErrMissingParams: {
		"en": "missing link parameters",
		"zh": "缺少链接参数",
	},
	ErrInvalidParams: {
		"en": "invalid link parameters",
		"zh": "链接参数无效",
	},
	ErrTargetNotAllowed: {
		"en": "link target is not allowed",
		"zh": "链接目标不被允许",
	},
}

func newDecodeError(code ErrorCode, locale string) *DecodeError {
	lang := "en"
	if strings.HasPrefix(strings.ToLower(locale), "zh") {
		lang = "zh"
	}
	return &DecodeError{Code: code, Message: messages[code][lang]}
}

// Encode serializes a candidate link to a URL-safe token:
// UTF-8 JSON, base64 with url-safe alphabet, no padding.
func Encode(link domain.CandidateLink) (string, error) {
	data, err := json.Marshal(link)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode is the inverse of Encode plus the full validation chain. The
// encoded token travels through a query parameter and can be replayed
// or hand-crafted by any client, so every URL that will ever be acted
// on must independently pass the allow-list: the primary is rejected
// hard, while disallowed fallbacks are silently dropped and the decode
// succeeds with whatever remains.
//
// On failure the returned candidate is nil and the error carries a
// message localized for the given locale.
func Decode(raw, locale string, allow *Allowlist) (*domain.CandidateLink, *DecodeError) {
	if strings.TrimSpace(raw) == "" {
		return nil, newDecodeError(ErrMissingParams, locale)
	}

	// Tolerate tokens produced by padded or non-url-safe encoders.
	normalized := strings.TrimRight(raw, "=")
	normalized = strings.NewReplacer("+", "-", "/", "_").Replace(normalized)

	data, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return nil, newDecodeError(ErrInvalidParams, locale)
	}

	var link domain.CandidateLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, newDecodeError(ErrInvalidParams, locale)
	}

	if link.Provider == "" || link.Title == "" ||
		link.Primary.Type == "" || link.Primary.URL == "" {
		return nil, newDecodeError(ErrInvalidParams, locale)
	}

	if !allow.Allow(link.Primary.URL) {
		return nil, newDecodeError(ErrTargetNotAllowed, locale)
	}

	if len(link.Fallbacks) > 0 {
		kept := make([]domain.OutboundLink, 0, len(link.Fallbacks))
		for _, fb := range link.Fallbacks {
			if allow.Allow(fb.URL) {
				kept = append(kept, fb)
			}
		}
		link.Fallbacks = kept
	}

	return &link, nil
}
