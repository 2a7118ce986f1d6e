package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguage(t *testing.T) {
	cases := map[string]string{
		"en-US":            "en",
		"fr":               "fr",
		"pt_BR.UTF-8":      "pt",
		"de_DE.UTF-8@euro": "de",
		"zh-Hant-TW":       "zh",
		"C":                "en",
		"POSIX":            "en",
		"":                 "en",
		"not a locale!":    "en",
	}
	for tag, want := range cases {
		assert.Equal(t, want, Language(tag), tag)
	}
}

func TestDetectPrefersLCAll(t *testing.T) {
	t.Setenv("LC_ALL", "es_ES.UTF-8")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "fr_FR.UTF-8")

	assert.Equal(t, "es", Detect())
}

func TestDetectFallsBackToLang(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "ja_JP.UTF-8")

	assert.Equal(t, "ja", Detect())
}

func TestDetectDefaultsToEnglish(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")

	assert.Equal(t, Fallback, Detect())
}
