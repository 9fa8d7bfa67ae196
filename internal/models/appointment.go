package models

import "time"

// Appointment is a booking of one service at one shop for one subject: either
// a registered user (UserID set) or a guest (CustomerName/CustomerPhone set).
// Its effective interval is [DateTime, DateTime + Service.Duration).
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint `gorm:"index" json:"userId"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user,omitempty"`

	ShopID uint  `gorm:"index" json:"shopId"`
	Shop   *Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop,omitempty"`

	ServiceID uint     `gorm:"index" json:"serviceId"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`

	DateTime time.Time `gorm:"index" json:"dateTime"`

	Notes  string `gorm:"type:text;default:''" json:"notes"`
	Status string `gorm:"size:20;default:'Pending'" json:"status"`

	CustomerName  *string `gorm:"size:100" json:"customerName"`
	CustomerPhone *string `gorm:"size:20" json:"customerPhone"`

	CreatedAt time.Time `json:"createdAt"`
}
