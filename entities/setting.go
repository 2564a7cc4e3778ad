package entities

import "time"

// Setting is a key/value row for service state that must survive restarts.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

const SettingTuaiActive = "tuai_active"
