package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Link is a titled URL owned by exactly one user. Position preserves
// insertion order; deletes leave gaps rather than resequencing.
type Link struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_user_url,priority:1"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	URL       string    `json:"url" gorm:"size:512;not null;uniqueIndex:idx_user_url,priority:2"`
	Position  uint      `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
