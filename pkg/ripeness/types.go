package ripeness

import (
	"fmt"
	"time"
)

type Category string

const (
	Unknown     Category = "UNKNOWN"
	Immature    Category = "IMMATURE"
	Approaching Category = "APPROACHING"
	Ready       Category = "READY" // reserved: the default rule folds the window edge into APPROACHING
	Overdue     Category = "OVERDUE"
)

// Categories lists every category in legend order.
var Categories = []Category{Unknown, Immature, Approaching, Ready, Overdue}

// CivilDate is a day/month/year triple as written in a description. It may
// hold components that do not form a real calendar date; see Valid.
type CivilDate struct {
	Year  int
	Month int
	Day   int
}

func (d CivilDate) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

func (d CivilDate) String() string { return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year) }

func (d CivilDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// ParseResult is what the description parser recovers from a plot's notes.
type ParseResult struct {
	SeedCode     string     `json:"seed_code,omitempty"` // "" when absent
	PlantingDate *CivilDate `json:"planting_date,omitempty"`
	Tags         []string   `json:"tags,omitempty"` // sorted treatment tags
}

func (p ParseResult) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Assessment is the derived harvest-readiness of one plot. It is never stored.
type Assessment struct {
	SeedCode     string     `json:"seed_code,omitempty"`
	PlantingDate *CivilDate `json:"planting_date,omitempty"`
	ElapsedDays  *int       `json:"elapsed_days,omitempty"`
	WindowDays   int        `json:"window_days"`
	Category     Category   `json:"category"`
	Color        string     `json:"color"`
}

// Palette maps categories to CSS colors. Future is the UNKNOWN color used
// when the planting date lies after the evaluation day.
type Palette struct {
	Unknown     string `json:"unknown"`
	Future      string `json:"future"`
	Immature    string `json:"immature"`
	Approaching string `json:"approaching"`
	Ready       string `json:"ready"`
	Overdue     string `json:"overdue"`
}

var DefaultPalette = Palette{
	Unknown:     "#888888",
	Future:      "#999999",
	Immature:    "#00cc00",
	Approaching: "#ffd700",
	Ready:       "#ffd700",
	Overdue:     "#802600",
}

func (p Palette) ColorFor(c Category) string {
	switch c {
	case Immature:
		return p.Immature
	case Approaching:
		return p.Approaching
	case Ready:
		return p.Ready
	case Overdue:
		return p.Overdue
	default:
		return p.Unknown
	}
}

// WithAmber returns a copy of p using amber for APPROACHING and READY.
// An empty amber leaves p unchanged.
func (p Palette) WithAmber(amber string) Palette {
	if amber == "" {
		return p
	}
	p.Approaching = amber
	p.Ready = amber
	return p
}
