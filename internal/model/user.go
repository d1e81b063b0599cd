package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAvatarURL is assigned to users who have not uploaded a picture.
const DefaultAvatarURL = "https://img.icons8.com/?size=100&id=tZuAOUGm9AuS&format=png&color=000000"

// User represents a registered profile owner.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfilePicture string    `json:"profilePicture" gorm:"size:512"`
	Phone          string    `json:"phone" gorm:"size:32"`
	Occupation     string    `json:"occupation" gorm:"size:255"`
	AboutMe        string    `json:"aboutMe" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations
	Links []Link `json:"links" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID and the placeholder avatar before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultAvatarURL
	}
	return nil
}
