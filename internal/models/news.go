package models

import "time"

// News is a user-owned post.
// IsPrivate marks the item as shared with anonymous visitors on the home feed.
type News struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content,omitempty"`
	CreatedDate time.Time  `gorm:"autoCreateTime" json:"created_date"`
	IsPrivate   bool       `gorm:"not null;default:false" json:"is_private"`
	IsReady     bool       `gorm:"not null;default:false" json:"is_ready"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	FileName    string     `gorm:"size:255" json:"file_name,omitempty"`

	// UserID is the owner; every query on news filters on it.
	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (News) TableName() string { return "news" }

// GetUserID implements the Ownable interface.
func (n News) GetUserID() uint {
	return n.UserID
}

// HasFile reports whether an attachment was stored for the item.
func (n News) HasFile() bool {
	return n.FileName != ""
}

// CategoryName returns the linked category name or "".
func (n News) CategoryName() string {
	if n.Category == nil {
		return ""
	}
	return n.Category.Name
}
