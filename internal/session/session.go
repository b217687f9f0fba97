// Package session holds the per-user selector state and conversation.
//
// A session moves NoLanguage -> LanguageChosen -> SectorChosen. Document
// and chat operations are only allowed in SectorChosen. Reset returns every
// field to its default. Each Session guards its own fields; callers make
// slow external calls outside the lock and commit results with
// CommitDocument or AppendExchange.
package session

import (
	"errors"
	"sync"
	"time"

	"doclens/pkg/models"
)

var (
	// ErrNotReady is returned for document and chat operations before a sector is chosen.
	ErrNotReady = errors.New("select a language and sector first")

	// ErrNoLanguage is returned when choosing a sector before a language.
	ErrNoLanguage = errors.New("select a language first")

	// ErrLocked is returned when changing language or sector without a reset.
	ErrLocked = errors.New("language and sector are set; reset to change them")

	// ErrNoDocument is returned for document chat with no document loaded.
	ErrNoDocument = errors.New("no document loaded")

	// ErrStale is returned when a result computed before a reset is committed after it.
	ErrStale = errors.New("session was reset while the request was running")

	// ErrInvalidLanguage is returned for a language outside the supported set.
	ErrInvalidLanguage = errors.New("unsupported language")

	// ErrInvalidSector is returned for a sector outside the supported set.
	ErrInvalidSector = errors.New("unsupported sector")
)

// State is the selector state.
type State int

const (
	StateNoLanguage State = iota
	StateLanguageChosen
	StateSectorChosen
)

func (s State) String() string {
	switch s {
	case StateNoLanguage:
		return "no_language"
	case StateLanguageChosen:
		return "language_chosen"
	case StateSectorChosen:
		return "sector_chosen"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Profile is the language and sector a request runs under. It also pins
// the reset generation so a result cannot land in a session that was reset
// in the meantime.
type Profile struct {
	Language models.Language
	Sector   models.Sector

	generation uint64
}

// Document is the current document of a session.
type Document struct {
	Name    string `json:"name"`
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

// Session is one user's selector state, document and chat histories.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	generation uint64
	language   models.Language
	sector     models.Sector
	document   Document
	docChat    []models.Message
	generalQA  []models.Message
	updatedAt  time.Time
}

// New creates a session with default fields.
func New(id string) *Session {
	now := time.Now()
	return &Session{ID: id, CreatedAt: now, updatedAt: now}
}

func (s *Session) stateLocked() State {
	switch {
	case s.language == "":
		return StateNoLanguage
	case s.sector == "":
		return StateLanguageChosen
	default:
		return StateSectorChosen
	}
}

// State returns the current selector state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// SelectLanguage sets the interface and response language. It may be
// changed freely until a sector is chosen.
func (s *Session) SelectLanguage(lang models.Language) error {
	if !supportedLanguage(lang) {
		return ErrInvalidLanguage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() == StateSectorChosen {
		return ErrLocked
	}
	s.language = lang
	s.updatedAt = time.Now()
	return nil
}

// SelectSector sets the sector, entering SectorChosen.
func (s *Session) SelectSector(sector models.Sector) error {
	if !supportedSector(sector) {
		return ErrInvalidSector
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stateLocked() {
	case StateNoLanguage:
		return ErrNoLanguage
	case StateSectorChosen:
		return ErrLocked
	}
	s.sector = sector
	s.updatedAt = time.Now()
	return nil
}

// Reset returns every field to its default, including both histories.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.language = ""
	s.sector = ""
	s.document = Document{}
	s.docChat = nil
	s.generalQA = nil
	s.updatedAt = time.Now()
}

// Profile returns the active language and sector, or ErrNotReady.
func (s *Session) Profile() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != StateSectorChosen {
		return Profile{}, ErrNotReady
	}
	return Profile{Language: s.language, Sector: s.sector, generation: s.generation}, nil
}

// Document returns the current document, or ErrNotReady / ErrNoDocument.
func (s *Session) Document() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stateLocked() != StateSectorChosen {
		return Document{}, ErrNotReady
	}
	if s.document.Text == "" {
		return Document{}, ErrNoDocument
	}
	return s.document, nil
}

// CommitDocument replaces the document text and summary together and
// clears the document chat, which referred to the old document.
func (s *Session) CommitDocument(p Profile, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(p); err != nil {
		return err
	}
	s.document = doc
	s.docChat = nil
	s.updatedAt = time.Now()
	return nil
}

// AppendExchange appends a question and its answer to the history of mode
// (chat or general) as one unit.
func (s *Session) AppendExchange(p Profile, mode models.Mode, question, answer models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(p); err != nil {
		return err
	}

	pair := []models.Message{question, answer}
	switch mode {
	case models.ModeChat:
		if s.document.Text == "" {
			return ErrNoDocument
		}
		s.docChat = append(s.docChat, pair...)
	case models.ModeGeneral:
		s.generalQA = append(s.generalQA, pair...)
	default:
		return errors.New("history exists only for chat and general modes")
	}
	s.updatedAt = time.Now()
	return nil
}

func (s *Session) checkLocked(p Profile) error {
	if s.stateLocked() != StateSectorChosen {
		return ErrNotReady
	}
	if p.generation != s.generation || p.Language != s.language || p.Sector != s.sector {
		return ErrStale
	}
	return nil
}

// View is a copy of the session safe to hand out.
type View struct {
	ID           string           `json:"id"`
	State        State            `json:"state"`
	Language     models.Language  `json:"language,omitempty"`
	Sector       models.Sector    `json:"sector,omitempty"`
	DocumentName string           `json:"document_name,omitempty"`
	DocumentText string           `json:"document_text,omitempty"`
	Summary      string           `json:"summary,omitempty"`
	DocumentChat []models.Message `json:"document_chat"`
	GeneralChat  []models.Message `json:"general_chat"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Snapshot returns a copy of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		ID:           s.ID,
		State:        s.stateLocked(),
		Language:     s.language,
		Sector:       s.sector,
		DocumentName: s.document.Name,
		DocumentText: s.document.Text,
		Summary:      s.document.Summary,
		DocumentChat: append([]models.Message{}, s.docChat...),
		GeneralChat:  append([]models.Message{}, s.generalQA...),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.updatedAt,
	}
}

// LastActive returns when the session last changed.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func supportedLanguage(lang models.Language) bool {
	if lang == models.LanguageAuto {
		return true
	}
	for _, l := range models.SupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}

func supportedSector(sector models.Sector) bool {
	for _, sec := range models.SupportedSectors() {
		if sec == sector {
			return true
		}
	}
	return false
}
