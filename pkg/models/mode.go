package models

// Mode selects which directive template the router builds.
type Mode string

const (
	// ModeSummary summarises the current document.
	ModeSummary Mode = "summary"
	// ModeChat answers a question grounded in the current document.
	ModeChat Mode = "chat"
	// ModeGeneral answers an open question within the sector.
	ModeGeneral Mode = "general"
)
