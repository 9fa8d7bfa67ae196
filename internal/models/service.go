package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint  `gorm:"index" json:"shopId"`
	Shop   *Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop,omitempty"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`

	// Duration in minutes; the slot engine derives interval widths from it.
	Duration int `json:"duration"`

	CreatedAt time.Time `json:"createdAt"`
}
