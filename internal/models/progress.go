package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Progress is one user's study-track state: which topics they checked off
// and which track is currently active.
type Progress struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"uniqueIndex;type:text;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	CompletedTopicIDs pq.Int64Array `gorm:"type:integer[]" json:"completedTopicIds"`
	ActiveTrack       string        `gorm:"default:'dsa'" json:"activeTrack"`
}

func (Progress) TableName() string {
	return "progress"
}

func (p *Progress) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
