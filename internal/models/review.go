package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"uniqueIndex:idx_reviews_user_shop" json:"userId"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	ShopID uint  `gorm:"uniqueIndex:idx_reviews_user_shop" json:"shopId"`
	Shop   *Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop,omitempty"`

	TeamMemberID *uint       `json:"teamMemberId"`
	TeamMember   *TeamMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"teamMember,omitempty"`

	Rating int    `gorm:"not null" json:"rating"`
	Title  string `gorm:"size:150" json:"title"`
	Text   string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `json:"createdAt"`
}
