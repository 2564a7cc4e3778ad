package entities

import "time"

type Plot struct {
	PlotID          string    `gorm:"primaryKey" json:"id"` // <group>-<file>-<index>
	Group           string    `json:"group" gorm:"column:layer_group;index"` // sawahring|blok
	SourceFile      string    `json:"source_file" gorm:"index"`
	Ord             int       `json:"ord"`
	Name            string    `json:"name"`
	BlokNo          string    `json:"blok_no,omitempty"`
	DescriptionText string    `json:"description"`
	CurrentFill     string    `json:"fill"`
	OriginalFill    *string   `json:"original_fill,omitempty"` // nil until ripeness mode first captures it
	GeometryJSON    string    `json:"-"`
	PropertiesJSON  string    `json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
