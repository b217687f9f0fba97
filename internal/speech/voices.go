package speech

import "doclens/pkg/models"

// DefaultVoice is used for Auto and any language without a voice.
const DefaultVoice = "en-IN"

var voices = map[models.Language]string{
	models.LanguageEnglish: "en-IN",
	models.LanguageHindi:   "hi-IN",
	models.LanguageTelugu:  "te-IN",
	models.LanguageUrdu:    "ur-IN",
}

// VoiceFor maps a language to a BCP-47 voice locale.
func VoiceFor(lang models.Language) string {
	if v, ok := voices[lang]; ok {
		return v
	}
	return DefaultVoice
}
