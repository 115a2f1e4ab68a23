package logging

import (
	"log/slog"
	"regexp"
	"strings"

	"mercator-hq/gateway/pkg/config"
)

// Redactor removes credentials from log messages and attributes.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternGoogleAPIKey = "google_api_key"
	PatternAPIKey       = "api_key"
	PatternKeyParam     = "key_param"
	PatternBearerToken  = "bearer_token"
	PatternPassword     = "password"
)

var defaultPatterns = []struct {
	name        string
	regex       string
	replacement string
}{
	// Google API keys: "AIza" followed by 35 URL-safe characters.
	{PatternGoogleAPIKey, `AIza[0-9A-Za-z_\-]{35}`, "AIza***"},
	{PatternAPIKey, `(?i)(api[-_]?key[-_:=]\s*)[a-zA-Z0-9_\-]+`, "${1}***"},
	// ?key=... as used by the Gemini REST API.
	{PatternKeyParam, `([?&]key=)[^&\s"]+`, "${1}***"},
	{PatternBearerToken, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
	{PatternPassword, `(password|passwd|pwd)[:=]\s*[^\s]+`, "$1: ***"},
}

// sensitiveKeys are attribute key fragments whose values are always masked.
var sensitiveKeys = []string{
	"password", "passwd", "secret", "token",
	"api_key", "apikey", "authorization", "credential",
}

// NewRedactor creates a Redactor with the built-in patterns followed by the
// custom ones. Custom patterns that fail to compile are skipped; config
// validation rejects them before this point.
func NewRedactor(custom []config.RedactPattern) *Redactor {
	r := &Redactor{}

	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}

	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		replacement := p.Replacement
		if replacement == "" {
			replacement = "***"
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: replacement,
		})
	}

	return r
}

// RedactString applies every pattern to value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactAttr masks sensitive keys entirely and pattern-redacts string and
// error values. Groups are handled recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if isSensitiveKey(a.Key) && v.Kind() != slog.KindGroup {
		return slog.String(a.Key, RedactAPIKey(v.String()))
	}

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, r.RedactString(v.String()))
	case slog.KindGroup:
		attrs := v.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}

	return slog.Attr{Key: a.Key, Value: v}
}

// isSensitiveKey checks if a key name indicates sensitive data.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// RedactAPIKey redacts a credential, keeping a 4 character prefix when the
// value is long enough to stay unguessable.
func RedactAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return "***"
	}
	return apiKey[:4] + "***"
}
