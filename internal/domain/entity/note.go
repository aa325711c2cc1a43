package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is a free-form memo kept next to the books.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	IsPinned  bool      `gorm:"not null;default:false" json:"is_pinned"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (Note) TableName() string {
	return "notes"
}
