package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Question struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Subject     string         `gorm:"index" json:"subject"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Solved      bool           `gorm:"default:false" json:"solved"`

	AuthorID string `gorm:"index;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers"`

	// Derived engagement fields.
	Upvotes int64 `gorm:"-" json:"upvotes"`
	Views   int64 `gorm:"-" json:"views"`

	HasUpvoted bool `gorm:"-" json:"hasUpvoted"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return
}

// Answer is a reply on a question. Its upvote set is independent of the
// parent question's. IsAccepted is carried from the legacy schema but no
// operation mutates it.
type Answer struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	QuestionID string    `gorm:"index;type:text;not null" json:"questionId"`
	AuthorID   string    `gorm:"index;type:text;not null" json:"authorId"`
	Author     User      `gorm:"foreignKey:AuthorID" json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsAccepted bool      `gorm:"default:false" json:"isAccepted"`
	CreatedAt  time.Time `json:"createdAt"`

	Upvotes    int64 `gorm:"-" json:"upvotes"`
	HasUpvoted bool  `gorm:"-" json:"hasUpvoted"`
}

func (Answer) TableName() string {
	return "answers"
}

func (a *Answer) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
