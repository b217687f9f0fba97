package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclens/pkg/models"
)

func TestEmbeddedTableLoads(t *testing.T) {
	tables, err := Parse(stringsYAML)
	require.NoError(t, err)
	for _, lang := range models.SupportedLanguages() {
		assert.NotEmpty(t, tables[lang], lang)
	}
}

func TestEveryLanguageHasOnlyKnownKeys(t *testing.T) {
	tables, err := Parse(stringsYAML)
	require.NoError(t, err)

	english := tables[models.LanguageEnglish]
	for lang, entries := range tables {
		for key := range entries {
			_, ok := english[key]
			assert.True(t, ok, "%s has key %q missing from English", lang, key)
		}
	}
}

func TestLookupFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "सारांश", Lookup(models.LanguageHindi, "app.summary"))
	assert.Equal(t, Lookup(models.LanguageEnglish, "error.stale"), Lookup(models.LanguageTelugu, "error.stale"))
	assert.Equal(t, Lookup(models.LanguageEnglish, "app.title"), Lookup(models.LanguageAuto, "app.title"))
	assert.Equal(t, "no.such.key", Lookup(models.LanguageUrdu, "no.such.key"))
}

func TestTableMergesEnglish(t *testing.T) {
	table := Table(models.LanguageUrdu)
	assert.Equal(t, "خلاصہ", table["app.summary"])
	assert.Equal(t, Lookup(models.LanguageEnglish, "error.invalid_request"), table["error.invalid_request"])
	assert.Len(t, table, len(Table(models.LanguageEnglish)))
}

func TestDisclaimerPerSector(t *testing.T) {
	for _, sector := range models.SupportedSectors() {
		assert.NotEqual(t, "disclaimer."+string(sector), Disclaimer(models.LanguageEnglish, sector))
	}
	assert.Contains(t, Disclaimer(models.LanguageEnglish, models.SectorMedical), "112")
}

func TestParseRejectsUnknownLanguage(t *testing.T) {
	_, err := Parse([]byte("English:\n  a: b\nKlingon:\n  a: c\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("Hindi:\n  a: b\n"))
	assert.Error(t, err)
}
