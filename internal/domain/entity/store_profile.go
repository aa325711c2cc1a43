package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreProfile holds the texts printed around every receipt. There is one
// row per installation.
type StoreProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Tagline    string    `gorm:"size:255" json:"tagline"`
	Address    string    `gorm:"type:text" json:"address"`
	Services   string    `gorm:"type:text" json:"services"`
	ThankYou   string    `gorm:"size:100" json:"thank_you"`
	Notice     string    `gorm:"type:text" json:"notice"`
	PaperWidth int       `gorm:"not null;default:58" json:"paper_width"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (s *StoreProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (StoreProfile) TableName() string {
	return "store_profiles"
}

func (s *StoreProfile) AddressLines() []string { return splitLines(s.Address) }
func (s *StoreProfile) ServiceLines() []string { return splitLines(s.Services) }
func (s *StoreProfile) NoticeLines() []string { return splitLines(s.Notice) }

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
