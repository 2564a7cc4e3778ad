package service

import (
	"errors"

	"sawah/entities"
	"sawah/pkg/ripeness"
)

var ErrUnknownTag = errors.New("unknown treatment tag")

// PlotDetail is what a map popup shows for one plot.
type PlotDetail struct {
	entities.Plot
	Parsed     ripeness.ParseResult `json:"parsed"`
	Assessment ripeness.Assessment  `json:"assessment"`
}

type PlotService interface {
	Import(group, file string, data []byte) (int, error)
	List(group string) ([]entities.Plot, error)
	Get(id string) (*PlotDetail, error)
	Search(q string) ([]entities.Plot, error)
	ByTreatment(tag string) ([]entities.Plot, error)
	Export() ([]byte, error)

	TuaiActive() bool
	SetTuai(active bool) ([]entities.Plot, error)
	ToggleTuai() (bool, []entities.Plot, error)
	Refresh() error
	Palette() ripeness.Palette
}
