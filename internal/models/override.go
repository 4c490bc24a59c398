package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidOverrideSet is a named collection of keyword-level bid overrides,
// usually loaded from an uploaded CSV and reused across generation runs.
type BidOverrideSet struct {
	ID        string        `json:"id" gorm:"type:uuid;primary_key"`
	Name      string        `json:"name" gorm:"not null"`
	CreatedBy string        `json:"created_by,omitempty"`
	Overrides []BidOverride `json:"overrides" gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type BidOverride struct {
	ID      string  `json:"id" gorm:"type:uuid;primary_key"`
	SetID   string  `json:"set_id" gorm:"index;not null"`
	Keyword string  `json:"keyword" gorm:"not null"`
	Bid     float64 `json:"bid" gorm:"type:decimal(10,2)"`
}

func (s *BidOverrideSet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (o *BidOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// BidMap flattens the set into the keyword→bid mapping the generator takes.
func (s *BidOverrideSet) BidMap() map[string]float64 {
	if len(s.Overrides) == 0 {
		return nil
	}
	m := make(map[string]float64, len(s.Overrides))
	for _, o := range s.Overrides {
		m[o.Keyword] = o.Bid
	}
	return m
}
