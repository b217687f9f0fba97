// Package workspace runs each user action against a session: it gates on
// the selector state, calls the extractor, router and speech renderer
// outside the session lock, and commits results only when every step
// succeeded.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"doclens/internal/extract"
	"doclens/internal/i18n"
	"doclens/internal/logger"
	"doclens/internal/router"
	"doclens/internal/session"
	"doclens/internal/speech"
	"doclens/pkg/models"
	"doclens/pkg/services"
)

// ErrEmptyQuestion is returned for blank questions.
var ErrEmptyQuestion = errors.New("question is empty")

// Extractor turns an uploaded file into text.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte, lang models.Language) (*extract.Result, error)
}

// Responder answers routed requests.
type Responder interface {
	Respond(ctx context.Context, req router.Request) (*router.Reply, error)
}

// Speaker renders text as audio.
type Speaker interface {
	Enabled() bool
	Render(ctx context.Context, text string, lang models.Language) ([]byte, error)
}

// Service implements services.Workspace.
type Service struct {
	store     *session.Store
	extractor Extractor
	responder Responder
	speaker   Speaker
	log       zerolog.Logger
}

var _ services.Workspace = (*Service)(nil)

// NewService wires a workspace. speaker may be nil when speech is disabled.
func NewService(store *session.Store, extractor Extractor, responder Responder, speaker Speaker) *Service {
	return &Service{
		store:     store,
		extractor: extractor,
		responder: responder,
		speaker:   speaker,
		log:       logger.WithComponent("workspace"),
	}
}

// CreateSession implements services.Workspace.
func (s *Service) CreateSession() services.SessionView {
	sess := s.store.Create()
	s.log.Info().Str("session_id", sess.ID).Int("live_sessions", s.store.Len()).Msg("Session created")
	return s.view(sess)
}

// GetSession implements services.Workspace.
func (s *Service) GetSession(id string) (services.SessionView, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return services.SessionView{}, err
	}
	return s.view(sess), nil
}

// EndSession implements services.Workspace.
func (s *Service) EndSession(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Info().Str("session_id", id).Msg("Session ended")
	return nil
}

// SelectLanguage implements services.Workspace.
func (s *Service) SelectLanguage(id string, lang models.Language) (services.SessionView, error) {
	return s.mutate(id, func(sess *session.Session) error { return sess.SelectLanguage(lang) })
}

// SelectSector implements services.Workspace.
func (s *Service) SelectSector(id string, sector models.Sector) (services.SessionView, error) {
	return s.mutate(id, func(sess *session.Session) error { return sess.SelectSector(sector) })
}

// Reset implements services.Workspace.
func (s *Service) Reset(id string) (services.SessionView, error) {
	return s.mutate(id, func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
}

func (s *Service) mutate(id string, fn func(*session.Session) error) (services.SessionView, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return services.SessionView{}, err
	}
	if err := fn(sess); err != nil {
		return services.SessionView{}, err
	}
	return s.view(sess), nil
}

// UploadDocument implements services.Workspace. The previous document and
// summary stay in place unless extraction and summarisation both succeed.
func (s *Service) UploadDocument(ctx context.Context, id, name string, data []byte) (*services.DocumentResult, error) {
	sess, profile, err := s.ready(id)
	if err != nil {
		return nil, err
	}
	log := logger.WithSession("workspace", id)

	if !extract.Supported(name) {
		return nil, fmt.Errorf("%w: %q", extract.ErrUnsupportedType, name)
	}

	start := time.Now()
	res, err := s.extractor.Extract(ctx, name, data, profile.Language)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Int("bytes", len(data)).Msg("Document not accepted")
		return nil, err
	}
	extractTook := time.Since(start)

	out, err := s.summarise(ctx, sess, profile, name, res.Text)
	if err != nil {
		return nil, err
	}
	out.Method = string(res.Method)
	out.Pages = res.Pages
	out.Warnings = res.Warnings
	out.ExtractMillis = extractTook.Milliseconds()

	log.Info().
		Str("file", name).
		Str("method", out.Method).
		Int("chars", out.Chars).
		Dur("extract", extractTook).
		Msg("Document committed")
	return out, nil
}

// LoadSample implements services.Workspace.
func (s *Service) LoadSample(ctx context.Context, id string) (*services.DocumentResult, error) {
	sess, profile, err := s.ready(id)
	if err != nil {
		return nil, err
	}

	smp, ok := samples[profile.Sector]
	if !ok {
		return nil, fmt.Errorf("no sample for sector %q", profile.Sector)
	}

	out, err := s.summarise(ctx, sess, profile, smp.name, smp.text)
	if err != nil {
		return nil, err
	}
	out.Method = string(extract.MethodPlainText)
	out.Sample = true
	return out, nil
}

func (s *Service) summarise(ctx context.Context, sess *session.Session, profile session.Profile, name, text string) (*services.DocumentResult, error) {
	reply, err := s.responder.Respond(ctx, router.Request{
		Sector:   profile.Sector,
		Mode:     models.ModeSummary,
		Language: profile.Language,
		Document: text,
	})
	if err != nil {
		log := logger.WithSession("workspace", sess.ID)
		log.Warn().Err(err).Str("file", name).Msg("Summary failed; document not stored")
		return nil, err
	}

	if err := sess.CommitDocument(profile, session.Document{Name: name, Text: text, Summary: reply.Text}); err != nil {
		return nil, err
	}

	return &services.DocumentResult{
		Name:     name,
		Chars:    utf8.RuneCountInString(text),
		Summary:  reply.Text,
		Language: reply.Language,
	}, nil
}

// AskDocument implements services.Workspace.
func (s *Service) AskDocument(ctx context.Context, id, question string) (*services.ChatReply, error) {
	sess, profile, err := s.ready(id)
	if err != nil {
		return nil, err
	}
	doc, err := sess.Document()
	if err != nil {
		return nil, err
	}
	return s.ask(ctx, sess, profile, models.ModeChat, doc.Text, question)
}

// AskGeneral implements services.Workspace.
func (s *Service) AskGeneral(ctx context.Context, id, question string) (*services.ChatReply, error) {
	sess, profile, err := s.ready(id)
	if err != nil {
		return nil, err
	}
	return s.ask(ctx, sess, profile, models.ModeGeneral, "", question)
}

func (s *Service) ask(ctx context.Context, sess *session.Session, profile session.Profile, mode models.Mode, document, question string) (*services.ChatReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	asked := models.NewUserMessage(question)
	reply, err := s.responder.Respond(ctx, router.Request{
		Sector:   profile.Sector,
		Mode:     mode,
		Language: profile.Language,
		Document: document,
		Query:    question,
	})
	if err != nil {
		log := logger.WithSession("workspace", sess.ID)
		log.Warn().Err(err).Str("mode", string(mode)).Msg("Question not answered")
		return nil, err
	}

	answer := models.NewAssistantMessage(reply.Text, reply.Emergency)
	if err := sess.AppendExchange(profile, mode, asked, answer); err != nil {
		return nil, err
	}

	return &services.ChatReply{
		Question:  asked,
		Answer:    answer,
		Emergency: reply.Emergency,
		Language:  reply.Language,
	}, nil
}

// Speak implements services.Workspace. Text is read in the session
// language; sessions without one use the default voice.
func (s *Service) Speak(ctx context.Context, id, text string) ([]byte, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if s.speaker == nil {
		return nil, speech.ErrDisabled
	}

	lang := sess.Snapshot().Language
	if lang == models.LanguageAuto {
		lang = router.DetectLanguage(text)
	}
	return s.speaker.Render(ctx, text, lang)
}

func (s *Service) ready(id string) (*session.Session, session.Profile, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, session.Profile{}, err
	}
	profile, err := sess.Profile()
	if err != nil {
		return nil, session.Profile{}, err
	}
	return sess, profile, nil
}

func (s *Service) view(sess *session.Session) services.SessionView {
	v := sess.Snapshot()
	out := services.SessionView{
		ID:           v.ID,
		State:        v.State.String(),
		Language:     v.Language,
		Sector:       v.Sector,
		DocumentName: v.DocumentName,
		DocumentText: v.DocumentText,
		Summary:      v.Summary,
		DocumentChat: v.DocumentChat,
		GeneralChat:  v.GeneralChat,
		SpeechReady:  s.speaker != nil && s.speaker.Enabled(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.Sector != "" {
		out.Disclaimer = i18n.Disclaimer(v.Language, v.Sector)
	}
	return out
}
