package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntityType identifies which catalog an engagement row belongs to.
type EntityType string

const (
	EntityTypeNote         EntityType = "NOTE"
	EntityTypeQuestion     EntityType = "QUESTION"
	EntityTypeAnswer       EntityType = "ANSWER"
	EntityTypeExchangeItem EntityType = "EXCHANGE_ITEM"
)

// ReactionKind names one toggleable membership set on an entity.
type ReactionKind string

const (
	ReactionUpvote   ReactionKind = "UPVOTE"
	ReactionLike     ReactionKind = "LIKE"
	ReactionStar     ReactionKind = "STAR"
	ReactionInterest ReactionKind = "INTEREST"
)

// supportedKinds lists the reaction sets each entity type carries.
var supportedKinds = map[EntityType][]ReactionKind{
	EntityTypeNote:         {ReactionUpvote, ReactionLike, ReactionStar},
	EntityTypeQuestion:     {ReactionUpvote},
	EntityTypeAnswer:       {ReactionUpvote},
	EntityTypeExchangeItem: {ReactionLike, ReactionInterest},
}

// KindSupported reports whether kind is a valid reaction set for the entity type.
func KindSupported(entityType EntityType, kind ReactionKind) bool {
	for _, k := range supportedKinds[entityType] {
		if k == kind {
			return true
		}
	}
	return false
}

// Reaction is one user's active membership in one reaction set.
// Membership rows are the source of truth; displayed counts are always
// derived from them. The unique index keeps set semantics intact under
// concurrent toggles.
type Reaction struct {
	ID         string       `gorm:"primaryKey;type:text" json:"id"`
	UserID     string       `gorm:"uniqueIndex:idx_reaction_membership;type:text;not null" json:"userId"`
	EntityType EntityType   `gorm:"uniqueIndex:idx_reaction_membership;type:text;not null" json:"entityType"`
	EntityID   string       `gorm:"uniqueIndex:idx_reaction_membership;index;type:text;not null" json:"entityId"`
	Kind       ReactionKind `gorm:"uniqueIndex:idx_reaction_membership;type:text;not null" json:"kind"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// EntityView tracks unique views per viewer per entity. ViewerID is a
// session user id or an anonymous client identifier, so there is no FK
// to users. One row per (viewer, entity), ever.
type EntityView struct {
	ID         string     `gorm:"primaryKey;type:text" json:"id"`
	ViewerID   string     `gorm:"uniqueIndex:idx_viewer_entity;type:text;not null" json:"viewerId"`
	EntityType EntityType `gorm:"uniqueIndex:idx_viewer_entity;type:text;not null" json:"entityType"`
	EntityID   string     `gorm:"uniqueIndex:idx_viewer_entity;index;type:text;not null" json:"entityId"`
	ViewedAt   time.Time  `gorm:"autoCreateTime" json:"viewedAt"`
}

func (EntityView) TableName() string {
	return "entity_views"
}

func (v *EntityView) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
