package validators

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
)

// ParseQueryInt reads an integer query parameter. A missing or blank value
// yields def; anything outside [min, max] is a validation error.
func ParseQueryInt(r *http.Request, key string, def, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, queryError(key, "must be an integer")
	}
	if n < min || n > max {
		return 0, queryError(key, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
	}
	return n, nil
}

// QueryText reads a free-text filter, collapsing inner whitespace and
// truncating to maxRunes without splitting a multi-byte character.
func QueryText(r *http.Request, key string, maxRunes int) string {
	text := strings.Join(strings.Fields(r.URL.Query().Get(key)), " ")
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxRunes]))
}

func queryError(key, reason string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid query parameter").
		WithDetails(map[string]string{key: reason})
}
