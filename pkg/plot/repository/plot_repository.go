package repository

import (
	"errors"

	"sawah/entities"
)

var ErrNotFound = errors.New("plot not found")

type PlotRepository interface {
	// ReplaceSource swaps every plot loaded from (group, file) for plots.
	ReplaceSource(group, file string, plots []entities.Plot) error
	List(group string) ([]entities.Plot, error)
	FindByID(id string) (*entities.Plot, error)
	SearchByName(q string) ([]entities.Plot, error)
	// SaveFills persists CurrentFill and OriginalFill only.
	SaveFills(plots []entities.Plot) error
	// LoadTuai reports the persisted ripeness mode, false when never saved.
	LoadTuai() (bool, error)
	SaveTuai(active bool) error
}
