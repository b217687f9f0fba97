package services

import (
	"context"
	"time"

	"doclens/pkg/models"
)

// Workspace is the per-user document assistant: language and sector
// selection, document upload with summary, document and general chat, and
// read-aloud.
type Workspace interface {
	// CreateSession starts a session in the no-language state
	CreateSession() SessionView

	// GetSession returns the current state of a session
	GetSession(id string) (SessionView, error)

	// EndSession forgets a session and everything in it
	EndSession(id string) error

	// SelectLanguage sets the language; allowed until a sector is chosen
	SelectLanguage(id string, lang models.Language) (SessionView, error)

	// SelectSector sets the sector, unlocking documents and chat
	SelectSector(id string, sector models.Sector) (SessionView, error)

	// Reset returns the session to its defaults ("change language/sector")
	Reset(id string) (SessionView, error)

	// UploadDocument extracts and summarises a file, replacing the current document on success
	UploadDocument(ctx context.Context, id, name string, data []byte) (*DocumentResult, error)

	// LoadSample uses the sector's sample document instead of an upload
	LoadSample(ctx context.Context, id string) (*DocumentResult, error)

	// AskDocument answers a question about the current document
	AskDocument(ctx context.Context, id, question string) (*ChatReply, error)

	// AskGeneral answers an open question within the sector
	AskGeneral(ctx context.Context, id, question string) (*ChatReply, error)

	// Speak renders text as MP3 in the session language
	Speak(ctx context.Context, id, text string) ([]byte, error)
}

// SessionView is a read-only copy of a session.
type SessionView struct {
	ID           string           `json:"id"`
	State        string           `json:"state"`
	Language     models.Language  `json:"language,omitempty"`
	Sector       models.Sector    `json:"sector,omitempty"`
	DocumentName string           `json:"document_name,omitempty"`
	DocumentText string           `json:"document_text,omitempty"`
	Summary      string           `json:"summary,omitempty"`
	DocumentChat []models.Message `json:"document_chat"`
	GeneralChat  []models.Message `json:"general_chat"`
	Disclaimer   string           `json:"disclaimer,omitempty"`
	SpeechReady  bool             `json:"speech_enabled"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// DocumentResult describes a newly committed document.
type DocumentResult struct {
	Name          string          `json:"name"`
	Method        string          `json:"method"`
	Pages         int             `json:"pages,omitempty"`
	Chars         int             `json:"chars"`
	Summary       string          `json:"summary"`
	Language      models.Language `json:"language"`
	Warnings      []string        `json:"warnings,omitempty"`
	Sample        bool            `json:"sample,omitempty"`
	ExtractMillis int64           `json:"extract_ms"`
}

// ChatReply is the assistant's answer to one question.
type ChatReply struct {
	Question  models.Message  `json:"question"`
	Answer    models.Message  `json:"answer"`
	Emergency bool            `json:"emergency"`
	Language  models.Language `json:"language"`
}
