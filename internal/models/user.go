package models

import "time"

// User is a registered author. Users are never deleted in-app.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255" json:"name"`
	Email          string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"` // bcrypt, never exposed in JSON
	About          string    `gorm:"type:text" json:"about,omitempty"`
	CreatedDate    time.Time `gorm:"autoCreateTime" json:"created_date"`

	News []News `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }
