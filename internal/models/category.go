package models

// Category is a free-text tag grouping news items, created on first use.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
}

func (Category) TableName() string { return "category" }

// Theme is the legacy categorization table. It is migrated so existing databases keep
// their rows, but no handler reads or writes it.
type Theme struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       *string   `gorm:"size:255" json:"name,omitempty"`
	CategoryID *uint     `gorm:"column:category" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Theme) TableName() string { return "themes" }
