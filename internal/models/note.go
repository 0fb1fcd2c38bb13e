package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Note struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Subject     string         `gorm:"index;not null" json:"subject"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`

	// Media host URL plus display metadata; the binary never touches us.
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
	FileSize string `json:"fileSize"`

	AuthorID string `gorm:"index;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	Comments []NoteComment `gorm:"foreignKey:NoteID" json:"commentsArr"`

	// Engagement fields derived from ledger rows at read time (never stored).
	Upvotes      int64 `gorm:"-" json:"upvotes"`
	Likes        int64 `gorm:"-" json:"likes"`
	Stars        int64 `gorm:"-" json:"stars"`
	Views        int64 `gorm:"-" json:"views"`
	CommentCount int64 `gorm:"-" json:"comments"`

	// Whether the requesting user is in each reaction set.
	HasUpvoted bool `gorm:"-" json:"hasUpvoted"`
	HasLiked   bool `gorm:"-" json:"hasLiked"`
	HasStarred bool `gorm:"-" json:"hasStarred"`
}

func (Note) TableName() string {
	return "notes"
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

// NoteComment is a reply on a note. Insertion order is display order.
type NoteComment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	NoteID    string    `gorm:"index;type:text;not null" json:"noteId"`
	AuthorID  string    `gorm:"index;type:text;not null" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (NoteComment) TableName() string {
	return "note_comments"
}

func (c *NoteComment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
