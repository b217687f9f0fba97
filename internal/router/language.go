package router

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"doclens/pkg/models"
)

var detectOptions = whatlanggo.Options{
	Whitelist: map[whatlanggo.Lang]bool{
		whatlanggo.Eng: true,
		whatlanggo.Hin: true,
		whatlanggo.Tel: true,
		whatlanggo.Urd: true,
	},
}

// DetectLanguage guesses which supported language text is written in,
// defaulting to English.
func DetectLanguage(text string) models.Language {
	if strings.TrimSpace(text) == "" {
		return models.LanguageEnglish
	}

	switch whatlanggo.DetectWithOptions(text, detectOptions).Lang {
	case whatlanggo.Hin:
		return models.LanguageHindi
	case whatlanggo.Tel:
		return models.LanguageTelugu
	case whatlanggo.Urd:
		return models.LanguageUrdu
	case whatlanggo.Eng:
		return models.LanguageEnglish
	}

	switch whatlanggo.DetectScript(text) {
	case unicode.Devanagari:
		return models.LanguageHindi
	case unicode.Telugu:
		return models.LanguageTelugu
	case unicode.Arabic:
		return models.LanguageUrdu
	}
	return models.LanguageEnglish
}

// ResponseLanguage resolves Auto against the query and document text.
func ResponseLanguage(selected models.Language, query, document string) models.Language {
	if selected != models.LanguageAuto && selected != "" {
		return selected
	}
	return DetectLanguage(strings.TrimSpace(query + " " + document))
}

var termKinds = map[models.Sector]string{
	models.SectorLaw:         "legal",
	models.SectorMedical:     "medical",
	models.SectorAgriculture: "agricultural",
}

// languageClause instructs the model to answer in lang only.
func languageClause(lang models.Language, sector models.Sector) string {
	kind := termKinds[sector]
	if kind == "" {
		kind = "technical"
	}
	return fmt.Sprintf("Respond entirely in %s. "+
		"If a %s term lacks a natural equivalent, keep the term in English and explain it in %s.",
		lang, kind, lang)
}
