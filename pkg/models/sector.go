package models

import "strings"

// Sector is the domain persona that constrains what the assistant talks about.
type Sector string

const (
	SectorLaw         Sector = "Law"
	SectorMedical     Sector = "Medical"
	SectorAgriculture Sector = "Agriculture"
)

// SupportedSectors lists the selectable sectors in display order.
func SupportedSectors() []Sector {
	return []Sector{SectorLaw, SectorMedical, SectorAgriculture}
}

// ParseSector accepts a sector name, case-insensitive.
func ParseSector(s string) (Sector, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "law", "legal":
		return SectorLaw, true
	case "medical", "medicine", "health":
		return SectorMedical, true
	case "agriculture", "agri", "farming":
		return SectorAgriculture, true
	}
	return "", false
}

// Restricted reports whether off-topic questions must be refused in this sector.
// Medical is open because emergencies are always answered anyway.
func (s Sector) Restricted() bool {
	return s != SectorMedical
}

func (s Sector) String() string { return string(s) }
