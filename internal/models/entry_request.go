package models

import "time"

// EntryUpdateRequest is a queued add-or-update of a dictionary entry awaiting
// reviewer action. Requests are stored independently per submission; there is
// no dedup on term for this kind.
type EntryUpdateRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Term         string    `gorm:"size:200;not null;index" json:"term"`
	Definition   string    `gorm:"type:text;not null" json:"definition"`
	Phonetics    string    `gorm:"size:200" json:"phonetics,omitempty"`
	PartOfSpeech string    `gorm:"size:60" json:"part_of_speech,omitempty"`
	UserID       *uint     `gorm:"index" json:"user_id,omitempty"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	EntryID      *uint     `gorm:"index" json:"entry_id,omitempty"`
	Entry        *Entry    `gorm:"foreignKey:EntryID;constraint:OnDelete:SET NULL" json:"entry,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EntryDeleteRequest is a queued deletion of a dictionary entry. At most one
// outstanding request exists per term; the unique index backs the atomic
// insert-if-absent used by the submission path.
type EntryDeleteRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Term      string    `gorm:"size:200;uniqueIndex;not null" json:"term"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	EntryID   *uint     `gorm:"index" json:"entry_id,omitempty"`
	Entry     *Entry    `gorm:"foreignKey:EntryID;constraint:OnDelete:SET NULL" json:"entry,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
