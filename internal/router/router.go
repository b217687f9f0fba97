// Package router turns a user action into a directive for the generative model.
//
// A directive is built from a fixed persona line and task list per sector
// and mode, a language clause and, for restricted sectors, a refusal
// instruction. A query that mentions a medical emergency replaces all of
// that with the emergency template, whatever the sector.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"doclens/internal/llm"
	"doclens/internal/logger"
	"doclens/pkg/models"
)

var (
	// ErrMissingDocument is returned for summary and chat without document text.
	ErrMissingDocument = errors.New("document text is required")

	// ErrMissingQuery is returned for chat and general without a question.
	ErrMissingQuery = errors.New("question is required")

	// ErrUnknownSector is returned for a sector with no templates.
	ErrUnknownSector = errors.New("unknown sector")

	// ErrUnknownMode is returned for a mode other than summary, chat or general.
	ErrUnknownMode = errors.New("unknown mode")
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 800
)

// Request is everything the router needs to build one directive.
type Request struct {
	Sector   models.Sector
	Mode     models.Mode
	Language models.Language
	Document string
	Query    string
}

// Directive is the prompt plus generation parameters sent to the model.
type Directive struct {
	Prompt      string
	Temperature float32
	MaxTokens   int

	// Emergency marks the emergency template; the reply gets EmergencyReminder appended.
	Emergency bool

	// Language is the resolved response language.
	Language models.Language
}

// Route builds the directive for req. It has no side effects.
func Route(req Request) (Directive, error) {
	modes, ok := templates[req.Sector]
	if !ok {
		return Directive{}, fmt.Errorf("%w: %q", ErrUnknownSector, req.Sector)
	}
	tmpl, ok := modes[req.Mode]
	if !ok {
		return Directive{}, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	document := strings.TrimSpace(req.Document)
	query := strings.TrimSpace(req.Query)
	switch req.Mode {
	case models.ModeSummary:
		if document == "" {
			return Directive{}, ErrMissingDocument
		}
	case models.ModeChat:
		if document == "" {
			return Directive{}, ErrMissingDocument
		}
		if query == "" {
			return Directive{}, ErrMissingQuery
		}
	case models.ModeGeneral:
		if query == "" {
			return Directive{}, ErrMissingQuery
		}
	}

	lang := ResponseLanguage(req.Language, query, document)
	clause := languageClause(lang, req.Sector)

	if req.Mode != models.ModeSummary && IsEmergency(query) {
		return Directive{
			Prompt:      emergencyPrompt(clause, document, query),
			Temperature: emergencyTemperature,
			MaxTokens:   emergencyMaxTokens,
			Emergency:   true,
			Language:    lang,
		}, nil
	}

	var b strings.Builder
	b.WriteString(tmpl.persona)
	b.WriteString("\n")
	b.WriteString(clause)
	b.WriteString("\n")

	if req.Mode != models.ModeSummary && req.Sector.Restricted() {
		fmt.Fprintf(&b, "Only answer questions about %s. If the question is about anything else, reply exactly with: %q "+
			"Exception: always help with medical emergencies.\n", domains[req.Sector], refusals[req.Sector])
	}

	switch req.Mode {
	case models.ModeSummary:
		b.WriteString("Simplify this document:\n")
		writeTasks(&b, tmpl.tasks)
		b.WriteString("\nDocument:\n")
		b.WriteString(document)
		b.WriteString("\n")
	case models.ModeChat:
		b.WriteString("The user's document:\n")
		b.WriteString(document)
		b.WriteString("\n\nUser question:\n")
		b.WriteString(query)
		b.WriteString("\n\nTasks:\n")
		writeTasks(&b, tmpl.tasks)
	case models.ModeGeneral:
		b.WriteString("User's question:\n")
		b.WriteString(query)
		b.WriteString("\n\nTasks:\n")
		writeTasks(&b, tmpl.tasks)
	}

	return Directive{
		Prompt:      b.String(),
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Language:    lang,
	}, nil
}

func writeTasks(b *strings.Builder, tasks []string) {
	for _, t := range tasks {
		b.WriteString("- ")
		b.WriteString(t)
		b.WriteString("\n")
	}
}

// Reply is the model's answer to one routed request.
type Reply struct {
	Text      string          `json:"text"`
	Emergency bool            `json:"emergency"`
	Language  models.Language `json:"language"`
}

// Service routes requests and sends them to a generator.
type Service struct {
	gen llm.Generator
	log zerolog.Logger
}

// NewService creates a router service backed by gen.
func NewService(gen llm.Generator) *Service {
	return &Service{
		gen: gen,
		log: logger.WithComponent("router"),
	}
}

// Respond routes req, calls the model once and returns its text verbatim,
// followed by EmergencyReminder for emergencies.
func (s *Service) Respond(ctx context.Context, req Request) (*Reply, error) {
	directive, err := Route(req)
	if err != nil {
		return nil, err
	}

	if directive.Emergency {
		s.log.Warn().
			Str("sector", string(req.Sector)).
			Str("mode", string(req.Mode)).
			Str("keyword", matchEmergency(req.Query)).
			Msg("Emergency override engaged")
	}

	text, err := s.gen.Generate(ctx, llm.Request{
		Prompt:      directive.Prompt,
		Temperature: directive.Temperature,
		MaxTokens:   directive.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	if directive.Emergency {
		text += EmergencyReminder
	}

	s.log.Debug().
		Str("sector", string(req.Sector)).
		Str("mode", string(req.Mode)).
		Str("language", string(directive.Language)).
		Int("chars", len(text)).
		Msg("Model reply ready")

	return &Reply{Text: text, Emergency: directive.Emergency, Language: directive.Language}, nil
}
