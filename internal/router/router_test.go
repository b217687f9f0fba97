package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclens/internal/llm"
	"doclens/pkg/models"
)

type fakeGenerator struct {
	reply string
	err   error
	got   []llm.Request
}

func (f *fakeGenerator) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

func TestRouteSummaryUsesSectorPersona(t *testing.T) {
	for _, sector := range models.SupportedSectors() {
		t.Run(string(sector), func(t *testing.T) {
			d, err := Route(Request{
				Sector:   sector,
				Mode:     models.ModeSummary,
				Language: models.LanguageHindi,
				Document: "Clause 4: rent is due on the 5th.",
			})
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(d.Prompt, templates[sector][models.ModeSummary].persona))
			assert.Contains(t, d.Prompt, "Respond entirely in Hindi.")
			assert.Contains(t, d.Prompt, "Clause 4: rent is due on the 5th.")
			assert.NotContains(t, d.Prompt, "reply exactly with")
			assert.InDelta(t, 0.7, d.Temperature, 0.0001)
			assert.Equal(t, 800, d.MaxTokens)
			assert.False(t, d.Emergency)
		})
	}
}

func TestRouteRestrictionOnlyForNonMedicalChat(t *testing.T) {
	cases := []struct {
		sector     models.Sector
		mode       models.Mode
		restricted bool
	}{
		{models.SectorLaw, models.ModeChat, true},
		{models.SectorLaw, models.ModeGeneral, true},
		{models.SectorAgriculture, models.ModeGeneral, true},
		{models.SectorMedical, models.ModeGeneral, false},
		{models.SectorMedical, models.ModeChat, false},
	}
	for _, tc := range cases {
		d, err := Route(Request{
			Sector:   tc.sector,
			Mode:     tc.mode,
			Language: models.LanguageEnglish,
			Document: "some document",
			Query:    "What does this mean?",
		})
		require.NoError(t, err)
		if tc.restricted {
			assert.Contains(t, d.Prompt, RefusalLine(tc.sector), "%s/%s", tc.sector, tc.mode)
		} else {
			assert.NotContains(t, d.Prompt, "reply exactly with", "%s/%s", tc.sector, tc.mode)
		}
	}
}

func TestRouteAgricultureOffTopicGetsRefusalInstruction(t *testing.T) {
	d, err := Route(Request{
		Sector:   models.SectorAgriculture,
		Mode:     models.ModeGeneral,
		Language: models.LanguageEnglish,
		Query:    "Is this contract valid?",
	})
	require.NoError(t, err)

	assert.False(t, d.Emergency)
	assert.Contains(t, d.Prompt, "Only answer questions about agriculture and farming.")
	assert.Contains(t, d.Prompt, "I can only help with agriculture questions.")
	assert.Contains(t, d.Prompt, "Is this contract valid?")
}

func TestRouteEmergencyOverridesLawSector(t *testing.T) {
	d, err := Route(Request{
		Sector:   models.SectorLaw,
		Mode:     models.ModeGeneral,
		Language: models.LanguageEnglish,
		Query:    "I have severe CHEST PAIN, what do I do?",
	})
	require.NoError(t, err)

	assert.True(t, d.Emergency)
	assert.InDelta(t, 0.3, d.Temperature, 0.0001)
	assert.Equal(t, 1000, d.MaxTokens)
	assert.Contains(t, d.Prompt, "MEDICAL EMERGENCY")
	assert.Contains(t, d.Prompt, "first-aid")
	assert.Contains(t, d.Prompt, "call emergency services")
	assert.Contains(t, d.Prompt, "not a substitute for professional medical care")
	assert.NotContains(t, d.Prompt, "LawLens")
	assert.NotContains(t, d.Prompt, RefusalLine(models.SectorLaw))
}

func TestRouteEmergencyInDocumentChat(t *testing.T) {
	d, err := Route(Request{
		Sector:   models.SectorAgriculture,
		Mode:     models.ModeChat,
		Language: models.LanguageEnglish,
		Document: "Pesticide label: keep away from children.",
		Query:    "my son drank this pesticide, is it poison?",
	})
	require.NoError(t, err)
	assert.True(t, d.Emergency)
	assert.Contains(t, d.Prompt, "Pesticide label")
}

func TestIsEmergencyMultilingual(t *testing.T) {
	hits := []string{
		"He is bleeding a lot",
		"मेरे पिता बेहोश हो गए हैं",
		"dil ka daura pada hai kya",
		"నాకు ఛాతీ నొప్పి ఉంది",
		"ابا کو دل کا دورہ پڑا",
		"Snakebite in the field",
	}
	for _, q := range hits {
		assert.True(t, IsEmergency(q), q)
	}

	misses := []string{
		"",
		"What is the notice period in this lease?",
		"Which fertiliser suits paddy?",
	}
	for _, q := range misses {
		assert.False(t, IsEmergency(q), q)
	}
}

func TestIsEmergencyIsPlainSubstringMatch(t *testing.T) {
	// "poison" inside a longer word still matches.
	assert.True(t, IsEmergency("Is this poisonous to cattle?"))
}

func TestRouteValidation(t *testing.T) {
	_, err := Route(Request{Sector: "Finance", Mode: models.ModeGeneral, Query: "q"})
	assert.ErrorIs(t, err, ErrUnknownSector)

	_, err = Route(Request{Sector: models.SectorLaw, Mode: "poem", Query: "q"})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = Route(Request{Sector: models.SectorLaw, Mode: models.ModeSummary})
	assert.ErrorIs(t, err, ErrMissingDocument)

	_, err = Route(Request{Sector: models.SectorLaw, Mode: models.ModeChat, Query: "q"})
	assert.ErrorIs(t, err, ErrMissingDocument)

	_, err = Route(Request{Sector: models.SectorLaw, Mode: models.ModeGeneral, Query: "  "})
	assert.ErrorIs(t, err, ErrMissingQuery)
}

func TestRouteAutoLanguageDetectsScript(t *testing.T) {
	d, err := Route(Request{
		Sector:   models.SectorMedical,
		Mode:     models.ModeGeneral,
		Language: models.LanguageAuto,
		Query:    "मधुमेह के लक्षण क्या हैं और इसे कैसे नियंत्रित करें?",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LanguageHindi, d.Language)
	assert.Contains(t, d.Prompt, "Respond entirely in Hindi.")
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, models.LanguageEnglish, DetectLanguage(""))
	assert.Equal(t, models.LanguageTelugu, DetectLanguage("వరి పంటకు ఏ ఎరువు మంచిది?"))
	assert.Equal(t, models.LanguageUrdu, DetectLanguage("یہ معاہدہ کب ختم ہوتا ہے؟"))
	assert.Equal(t, models.LanguageEnglish, DetectLanguage("When does this agreement end?"))
	assert.Equal(t, models.LanguageTelugu, ResponseLanguage(models.LanguageTelugu, "When does it end?", ""))
}

func TestRespondAppendsReminderForEmergency(t *testing.T) {
	gen := &fakeGenerator{reply: "⚠️ MEDICAL EMERGENCY\n1. Sit down."}
	svc := NewService(gen)

	reply, err := svc.Respond(context.Background(), Request{
		Sector:   models.SectorLaw,
		Mode:     models.ModeGeneral,
		Language: models.LanguageEnglish,
		Query:    "I have severe chest pain, what do I do?",
	})
	require.NoError(t, err)

	assert.True(t, reply.Emergency)
	assert.True(t, strings.HasPrefix(reply.Text, gen.reply))
	assert.True(t, strings.HasSuffix(reply.Text, EmergencyReminder))
	assert.Contains(t, reply.Text, "112")
	assert.Contains(t, reply.Text, "911")

	require.Len(t, gen.got, 1)
	assert.InDelta(t, 0.3, gen.got[0].Temperature, 0.0001)
	assert.Equal(t, 1000, gen.got[0].MaxTokens)
}

func TestRespondReturnsTextVerbatim(t *testing.T) {
	gen := &fakeGenerator{reply: "  **Summary**: pay rent by the 5th.\n"}
	svc := NewService(gen)

	reply, err := svc.Respond(context.Background(), Request{
		Sector:   models.SectorLaw,
		Mode:     models.ModeSummary,
		Language: models.LanguageEnglish,
		Document: "Rent is due on the 5th of each month.",
	})
	require.NoError(t, err)
	assert.Equal(t, gen.reply, reply.Text)
	assert.False(t, reply.Emergency)
}

func TestRespondPropagatesGeneratorError(t *testing.T) {
	genErr := llm.WrapError("Generate", "m", errors.New("timeout"), "")
	svc := NewService(&fakeGenerator{err: genErr})

	_, err := svc.Respond(context.Background(), Request{
		Sector: models.SectorMedical, Mode: models.ModeGeneral, Language: models.LanguageEnglish, Query: "fever?",
	})
	assert.ErrorIs(t, err, llm.ErrGenerationFailed)
}

func TestRespondDoesNotCallModelOnInvalidRequest(t *testing.T) {
	gen := &fakeGenerator{}
	_, err := NewService(gen).Respond(context.Background(), Request{Sector: models.SectorLaw, Mode: models.ModeSummary})
	assert.ErrorIs(t, err, ErrMissingDocument)
	assert.Empty(t, gen.got)
}
