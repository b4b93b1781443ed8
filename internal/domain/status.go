package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Band is a temperature severity category. Bands are ordered: a higher value
// is more severe.
type Band int

const (
	BandNormal Band = iota
	BandWarm
	BandHot
	BandDangerous
)

// Band lower bounds in degrees Celsius, inclusive.
const (
	WarmThreshold      = 35.0
	HotThreshold       = 45.0
	DangerousThreshold = 55.0
)

func (b Band) String() string {
	switch b {
	case BandNormal:
		return "normal"
	case BandWarm:
		return "warm"
	case BandHot:
		return "hot"
	case BandDangerous:
		return "dangerous"
	default:
		return fmt.Sprintf("band(%d)", int(b))
	}
}

// MarshalText encodes the band as its lower-case name.
func (b Band) MarshalText() ([]byte, error) {
	switch b {
	case BandNormal, BandWarm, BandHot, BandDangerous:
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("marshal band: unknown value %d", int(b))
	}
}

// UnmarshalText decodes a band from its lower-case name.
func (b *Band) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*b = BandNormal
	case "warm":
		*b = BandWarm
	case "hot":
		*b = BandHot
	case "dangerous":
		*b = BandDangerous
	default:
		return fmt.Errorf("unmarshal band: unknown name %q", text)
	}
	return nil
}

// Tip is one cooling suggestion.
type Tip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StatusInfo describes a band for display. Tips are ordered most urgent first.
type StatusInfo struct {
	Band    Band   `json:"band"`
	Message string `json:"message"`
	Tips    []Tip  `json:"tips"`

	// Presentation hints for renderers.
	Emoji string `json:"emoji"`
	Tone  string `json:"tone"`
}

// Status is the most recent classification result.
type Status struct {
	ID        uuid.UUID  `json:"id"`
	Reading   Reading    `json:"reading"`
	Info      StatusInfo `json:"info"`
	CheckedAt time.Time  `json:"checked_at"`
}
