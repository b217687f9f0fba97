package models

import "strings"

// Language is an interface/response language offered to the user.
type Language string

const (
	LanguageAuto    Language = "Auto"
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
	LanguageTelugu  Language = "Telugu"
	LanguageUrdu    Language = "Urdu"
)

// SupportedLanguages lists the selectable languages in display order.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageHindi, LanguageTelugu, LanguageUrdu}
}

// ParseLanguage accepts a display name or an ISO 639-1 code, case-insensitive.
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return LanguageAuto, true
	case "english", "en":
		return LanguageEnglish, true
	case "hindi", "hi":
		return LanguageHindi, true
	case "telugu", "te":
		return LanguageTelugu, true
	case "urdu", "ur":
		return LanguageUrdu, true
	}
	return "", false
}

// Code returns the ISO 639-1 code of the language, "en" for Auto.
func (l Language) Code() string {
	switch l {
	case LanguageHindi:
		return "hi"
	case LanguageTelugu:
		return "te"
	case LanguageUrdu:
		return "ur"
	default:
		return "en"
	}
}

func (l Language) String() string { return string(l) }
