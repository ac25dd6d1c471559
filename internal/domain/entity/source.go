package entity

import (
	"fmt"
	"math"
	"strings"
)

// Side is the ideological category of a news source.
type Side string

// Known sides.
const (
	SideLeft   Side = "LEFT"
	SideCenter Side = "CENTER"
	SideRight  Side = "RIGHT"
)

// Sides lists every known side in display order.
var Sides = []Side{SideLeft, SideCenter, SideRight}

// ParseSide converts a case-insensitive string into a Side.
func ParseSide(s string) (Side, error) {
	side := Side(strings.ToUpper(strings.TrimSpace(s)))
	if !side.Valid() {
		return "", &ValidationError{Field: "side", Message: fmt.Sprintf("invalid side %q (must be LEFT, CENTER, or RIGHT)", s)}
	}
	return side, nil
}

// Valid reports whether the side is one of the known sides.
func (s Side) Valid() bool {
	switch s {
	case SideLeft, SideCenter, SideRight:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s Side) String() string {
	return string(s)
}

// Source is a configured news outlet with a fixed position on the bias plane.
// Sources are loaded once at startup and never mutated.
type Source struct {
	ID      string
	Name    string
	Side    Side
	X       float64
	Y       float64
	FeedURL string // optional RSS/Atom feed, used by the RSS provider
}

// Coordinate is a point on the bias plane.
type Coordinate struct {
	X float64
	Y float64
}

// Coordinate returns the source's position.
func (s Source) Coordinate() Coordinate {
	return Coordinate{X: s.X, Y: s.Y}
}

// DistanceTo returns the Euclidean distance between the source and c.
func (s Source) DistanceTo(c Coordinate) float64 {
	return math.Hypot(s.X-c.X, s.Y-c.Y)
}

// Validate validates the Source entity fields.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("is required for source %q", s.ID)}
	}
	if !s.Side.Valid() {
		return &ValidationError{Field: "side", Message: fmt.Sprintf("invalid side %q for source %q", s.Side, s.ID)}
	}
	if err := ValidateCoordinate(s.X, s.Y); err != nil {
		return fmt.Errorf("source %q: %w", s.ID, err)
	}
	if s.FeedURL != "" {
		if err := ValidateURLFormat(s.FeedURL); err != nil {
			return fmt.Errorf("source %q feed: %w", s.ID, err)
		}
	}
	return nil
}
