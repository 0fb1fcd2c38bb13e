package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackCategory string

const (
	CategoryBug         FeedbackCategory = "bug"
	CategoryFeature     FeedbackCategory = "feature"
	CategoryImprovement FeedbackCategory = "improvement"
	CategoryGeneral     FeedbackCategory = "general"
)

// ValidFeedbackCategory reports whether c is one of the accepted categories.
func ValidFeedbackCategory(c FeedbackCategory) bool {
	switch c {
	case CategoryBug, CategoryFeature, CategoryImprovement, CategoryGeneral:
		return true
	}
	return false
}

// Feedback may be submitted anonymously, so UserID is optional.
type Feedback struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Category FeedbackCategory `gorm:"type:text;not null" json:"category"`
	Subject  string           `gorm:"not null" json:"subject"`
	Message  string           `gorm:"type:text;not null" json:"message"`
	Email    string           `json:"email,omitempty"`

	UserID *string `gorm:"index" json:"userId,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
