package services

import (
	"errors"

	"github.com/shriya7756/campusconnect-backend/internal/database"
	"github.com/shriya7756/campusconnect-backend/internal/models"
	"github.com/shriya7756/campusconnect-backend/pkg/utils"
	"gorm.io/gorm"
)

// ErrKindNotSupported is returned when a reaction kind is not part of the
// entity type's reaction sets.
var ErrKindNotSupported = errors.New("reaction kind not supported for this entity")

// ToggleReaction flips membership of userID in the (entityType, entityID,
// kind) reaction set and reports whether the call activated the reaction.
//
// The deactivate path is a single conditional DELETE; the activate path is
// an INSERT guarded by the unique membership index, so two concurrent
// toggles cannot double-add a user or corrupt the set.
func ToggleReaction(db *gorm.DB, entityType models.EntityType, entityID string, kind models.ReactionKind, userID string) (bool, error) {
	if !models.KindSupported(entityType, kind) {
		return false, ErrKindNotSupported
	}

	activated := false
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND entity_type = ? AND entity_id = ? AND kind = ?",
			userID, entityType, entityID, kind).
			Delete(&models.Reaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// Was active, now removed.
			return nil
		}

		reaction := models.Reaction{
			ID:         utils.GenerateID(),
			UserID:     userID,
			EntityType: entityType,
			EntityID:   entityID,
			Kind:       kind,
		}
		if err := tx.Create(&reaction).Error; err != nil {
			if database.IsUniqueViolation(err) {
				// A concurrent toggle won the insert; the set already
				// contains the user, which is the state we wanted.
				activated = true
				return nil
			}
			return err
		}
		activated = true
		return nil
	})
	return activated, err
}

// RecordView counts a view for viewerID exactly once per entity, ever.
// Duplicate calls are silently absorbed. Returns whether this call counted.
func RecordView(db *gorm.DB, entityType models.EntityType, entityID, viewerID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}

	counted := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.EntityView
		result := tx.Where("viewer_id = ? AND entity_type = ? AND entity_id = ?",
			viewerID, entityType, entityID).
			First(&existing)
		if result.Error == nil {
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		view := models.EntityView{
			ID:         utils.GenerateID(),
			ViewerID:   viewerID,
			EntityType: entityType,
			EntityID:   entityID,
		}
		if err := tx.Create(&view).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return nil
			}
			return err
		}
		counted = true
		return nil
	})
	return counted, err
}

type entityCount struct {
	EntityID string
	N        int64
}

// ReactionCounts returns set cardinality per entity id for one kind.
// Displayed counts are always computed this way; there is no stored
// counter that could drift from the membership rows.
func ReactionCounts(db *gorm.DB, entityType models.EntityType, kind models.ReactionKind, entityIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(entityIDs))
	if len(entityIDs) == 0 {
		return counts, nil
	}

	var rows []entityCount
	err := db.Model(&models.Reaction{}).
		Select("entity_id, COUNT(*) AS n").
		Where("entity_type = ? AND kind = ? AND entity_id IN ?", entityType, kind, entityIDs).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EntityID] = row.N
	}
	return counts, nil
}

// ViewCounts returns the unique-viewer count per entity id.
func ViewCounts(db *gorm.DB, entityType models.EntityType, entityIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(entityIDs))
	if len(entityIDs) == 0 {
		return counts, nil
	}

	var rows []entityCount
	err := db.Model(&models.EntityView{}).
		Select("entity_id, COUNT(*) AS n").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EntityID] = row.N
	}
	return counts, nil
}

// ReactedSet returns which of entityIDs have userID in their (kind) set,
// used to populate the has-reacted fields on responses.
func ReactedSet(db *gorm.DB, entityType models.EntityType, kind models.ReactionKind, userID string, entityIDs []string) (map[string]bool, error) {
	reacted := make(map[string]bool, len(entityIDs))
	if userID == "" || len(entityIDs) == 0 {
		return reacted, nil
	}

	var ids []string
	err := db.Model(&models.Reaction{}).
		Where("user_id = ? AND entity_type = ? AND kind = ? AND entity_id IN ?",
			userID, entityType, kind, entityIDs).
		Pluck("entity_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reacted[id] = true
	}
	return reacted, nil
}
