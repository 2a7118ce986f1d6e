// Package locale reduces locale identifiers to the two-letter language code
// reported with consent events.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Fallback is used whenever no usable language can be derived.
const Fallback = "en"

// Language returns the ISO 639-1 code for a BCP-47 ("pt-BR") or POSIX
// ("pt_BR.UTF-8@euro") locale tag.
func Language(tag string) string {
	raw := strings.TrimSpace(tag)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ReplaceAll(raw, "_", "-")
	if raw == "" || strings.EqualFold(raw, "C") || strings.EqualFold(raw, "POSIX") {
		return Fallback
	}

	parsed, err := language.Parse(raw)
	if err != nil {
		return Fallback
	}
	base, confidence := parsed.Base()
	if confidence == language.No {
		return Fallback
	}
	code := base.String()
	if len(code) != 2 {
		return Fallback
	}
	return code
}

// Detect reads the process locale from the usual POSIX variables.
func Detect() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return Language(value)
		}
	}
	return Fallback
}
