package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTranslateWithFallback(t *testing.T) {
	t.Parallel()

	svc, err := NewService()
	require.NoError(t, err)
	require.Equal(t, "Language", svc.Tr(StrLanguage))

	require.NoError(t, svc.SetLanguageTag("de"))
	require.Equal(t, "Sprache", svc.Tr(StrLanguage))
	require.Equal(t, "Battery percentage", svc.Tr(StrBatteryPct), "missing German entry falls back to English")
	require.Equal(t, "STR_UNKNOWN", svc.Tr(Key("STR_UNKNOWN")))
}

func TestLanguageNames(t *testing.T) {
	t.Parallel()

	svc, err := NewService()
	require.NoError(t, err)
	require.Equal(t, len(Languages), svc.LanguageCount())
	require.Equal(t, "English", svc.LanguageName(0))
	require.Equal(t, "Deutsch", svc.LanguageName(3))
	require.Empty(t, svc.LanguageName(-1))
	require.Empty(t, svc.LanguageName(svc.LanguageCount()))
}

func TestSetLanguageNotifiesObservers(t *testing.T) {
	t.Parallel()

	svc, err := NewService()
	require.NoError(t, err)

	var got []language.Tag
	svc.OnChange(func(_ int, tag language.Tag) { got = append(got, tag) })

	require.NoError(t, svc.SetLanguage(2))
	require.Error(t, svc.SetLanguage(99))
	require.Equal(t, []language.Tag{language.French}, got)
	require.Equal(t, 2, svc.Language())
	require.Equal(t, language.French, svc.Tag())
}
