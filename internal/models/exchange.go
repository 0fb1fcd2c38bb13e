package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ExchangeContact is how the seller wants to be reached. Stored inline,
// rendered as a nested object.
type ExchangeContact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

type ExchangeItem struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    string          `gorm:"index;not null" json:"category"`
	Price       float64         `gorm:"not null" json:"price"`
	Condition   string          `gorm:"index;not null" json:"condition"`
	Tags        pq.StringArray  `gorm:"type:text[]" json:"tags"`
	Images      pq.StringArray  `gorm:"type:text[]" json:"images"`
	Contact     ExchangeContact `gorm:"embedded;embeddedPrefix:contact_" json:"contact"`

	SellerID string `gorm:"index;not null" json:"sellerId"`
	Seller   User   `gorm:"foreignKey:SellerID" json:"seller"`

	// Derived engagement fields.
	Interested int64 `gorm:"-" json:"interested"`
	Likes      int64 `gorm:"-" json:"likes"`
	Views      int64 `gorm:"-" json:"views"`

	HasInterest bool `gorm:"-" json:"hasInterest"`
	HasLiked    bool `gorm:"-" json:"hasLiked"`
}

func (ExchangeItem) TableName() string {
	return "exchange_items"
}

func (e *ExchangeItem) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}
