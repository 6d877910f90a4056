package models

import "time"

// Entry is a canonical dictionary entry, keyed uniquely by term.
type Entry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Term         string    `gorm:"size:200;uniqueIndex;not null" json:"term"`
	Definition   string    `gorm:"type:text;not null" json:"definition"`
	Phonetics    string    `gorm:"size:200" json:"phonetics,omitempty"`
	PartOfSpeech string    `gorm:"size:60" json:"part_of_speech,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
