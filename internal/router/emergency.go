package router

import (
	"strings"
)

// emergencyKeywords are matched as lower-cased substrings of the query.
// No stemming or tokenisation is applied, so a keyword inside a longer word
// also matches.
var emergencyKeywords = []string{
	// English
	"chest pain", "heart attack", "cardiac arrest", "bleeding", "blood loss",
	"unconscious", "fainted", "not breathing", "can't breathe", "cannot breathe",
	"difficulty breathing", "choking", "poison", "overdose", "seizure", "convulsion",
	"stroke", "snake bite", "snakebite", "severe burn", "suicide",

	// Hindi (Devanagari)
	"सीने में दर्द", "छाती में दर्द", "दिल का दौरा", "खून बह", "बेहोश", "सांस नहीं",
	"साँस नहीं", "ज़हर", "जहर", "दौरा पड़", "मिर्गी", "सांप ने काट", "आत्महत्या",

	// Hindi / Urdu (transliterated)
	"seene mein dard", "sine me dard", "dil ka daura", "khoon beh", "khoon nikal",
	"behosh", "saans nahi", "sans nahi", "zehar", "jahar", "saanp ne kaata", "atmahatya",

	// Telugu
	"ఛాతీ నొప్పి", "గుండె నొప్పి", "గుండెపోటు", "రక్తస్రావం", "స్పృహ తప్పి",
	"ఊపిరి ఆడటం లేదు", "విషం", "మూర్ఛ", "పాము కాటు", "ఆత్మహత్య",

	// Telugu (transliterated)
	"chaati noppi", "gunde noppi", "gunde potu", "visham", "murcha", "paamu kaatu",

	// Urdu
	"سینے میں درد", "دل کا دورہ", "خون بہ", "بے ہوش", "بیہوش", "سانس نہیں", "زہر",
	"دورہ پڑ", "سانپ نے کاٹ", "خودکشی",
}

// EmergencyReminder is appended to every emergency reply.
const EmergencyReminder = "\n\n---\n" +
	"🚨 **If this is an emergency, call your local emergency number now:**\n" +
	"- India: 112 (Ambulance: 108)\n" +
	"- USA / Canada: 911\n" +
	"- UK: 999\n" +
	"- European Union: 112\n" +
	"- Australia: 000\n" +
	"- Pakistan: 1122\n"

const (
	emergencyTemperature = 0.3
	emergencyMaxTokens   = 1000
)

// IsEmergency reports whether query contains any emergency keyword.
func IsEmergency(query string) bool {
	return matchEmergency(query) != ""
}

// matchEmergency returns the first keyword found in query, or "".
func matchEmergency(query string) string {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return ""
	}
	for _, kw := range emergencyKeywords {
		if strings.Contains(q, kw) {
			return kw
		}
	}
	return ""
}

// emergencyPrompt replaces every sector and mode template when the query
// matches an emergency keyword.
func emergencyPrompt(langClause, document, query string) string {
	var b strings.Builder

	b.WriteString("You are a calm medical emergency first-responder assistant.\n")
	b.WriteString(langClause)
	b.WriteString("\nThe user may be facing a medical emergency. This overrides any topic restriction.\n\n")
	b.WriteString("Respond with:\n")
	b.WriteString("- Begin with a clear warning banner: ⚠️ MEDICAL EMERGENCY\n")
	b.WriteString("- Basic, safe first-aid steps the user can take right now, as a short numbered list.\n")
	b.WriteString("- A strong recommendation to call emergency services or get to the nearest hospital immediately.\n")
	b.WriteString("- What NOT to do while waiting for help.\n")
	b.WriteString("- A disclaimer that this guidance is not a substitute for professional medical care.\n")
	b.WriteString("Keep sentences short and easy to follow under stress.\n")

	if strings.TrimSpace(document) != "" {
		b.WriteString("\nThe user's document (use only if relevant):\n")
		b.WriteString(document)
		b.WriteString("\n")
	}

	b.WriteString("\nUser's message:\n")
	b.WriteString(query)
	b.WriteString("\n")
	return b.String()
}
