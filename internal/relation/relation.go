// Package relation implements the neighbor request state machine and the
// derived mutual relationship. Requests are directed rows; the mutual
// relation itself is a single canonical-order edge per pair, written inside
// the accept transaction so it can never end up half-applied.
package relation

import (
	"errors"

	"blogring/backend/internal/apperr"
	"blogring/backend/internal/models"

	"gorm.io/gorm"
)

// Request creates a pending neighbor request from one user to another.
// Self-requests are invalid; a pending request in either direction or an
// existing mutual relation blocks a new one.
func Request(db *gorm.DB, fromUserID, toUserID uint, message string) (*models.NeighborRequest, error) {
	if fromUserID == toUserID {
		return nil, apperr.Wrap(apperr.ErrValidation, "cannot send a neighbor request to yourself")
	}

	var toUser models.User
	if err := db.First(&toUser, toUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "user %d not found", toUserID)
		}
		return nil, err
	}

	mutual, err := IsMutualUsers(db, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if mutual {
		return nil, apperr.Wrap(apperr.ErrConflict, "already mutual neighbors")
	}

	var pending int64
	err = db.Model(&models.NeighborRequest{}).
		Where("status = ?", models.NeighborPending).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			fromUserID, toUserID, toUserID, fromUserID).
		Count(&pending).Error
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, apperr.Wrap(apperr.ErrConflict, "a pending request already exists")
	}

	request := models.NeighborRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    message,
		Status:     models.NeighborPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Accept transitions a pending request to accepted and registers the mutual
// relation for both profiles in the same transaction. Only the request's
// recipient may accept. Accepting an accepted request is a conflict; any
// other miss is not found.
func Accept(db *gorm.DB, requestID, actingUserID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var request models.NeighborRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Wrap(apperr.ErrNotFound, "neighbor request not found")
			}
			return err
		}
		if request.ToUserID != actingUserID {
			return apperr.Wrap(apperr.ErrForbidden, "only the recipient can accept a request")
		}
		if request.Status == models.NeighborAccepted {
			return apperr.Wrap(apperr.ErrConflict, "request already accepted")
		}

		if err := tx.Model(&request).Update("status", models.NeighborAccepted).Error; err != nil {
			return err
		}

		fromProfile, err := profileOf(tx, request.FromUserID)
		if err != nil {
			return err
		}
		toProfile, err := profileOf(tx, request.ToUserID)
		if err != nil {
			return err
		}

		// FirstOrCreate makes re-adding an existing relation a no-op.
		low, high := models.CanonicalPair(fromProfile.ID, toProfile.ID)
		edge := models.NeighborEdge{LowProfileID: low, HighProfileID: high}
		return tx.Where(&models.NeighborEdge{LowProfileID: low, HighProfileID: high}).
			FirstOrCreate(&edge).Error
	})
}

// Reject deletes a pending request. Only the recipient may reject; rejected
// requests are never persisted or queryable afterwards.
func Reject(db *gorm.DB, requestID, actingUserID uint) error {
	var request models.NeighborRequest
	if err := db.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Wrap(apperr.ErrNotFound, "neighbor request not found")
		}
		return err
	}
	if request.ToUserID != actingUserID {
		return apperr.Wrap(apperr.ErrForbidden, "only the recipient can reject a request")
	}
	if request.Status == models.NeighborAccepted {
		return apperr.Wrap(apperr.ErrConflict, "request already accepted")
	}
	return db.Delete(&request).Error
}

// IsMutual reports whether two profiles are mutual neighbors. The check runs
// against the edge table, never against the request log.
func IsMutual(db *gorm.DB, profileA, profileB uint) (bool, error) {
	if profileA == profileB {
		return false, nil
	}
	low, high := models.CanonicalPair(profileA, profileB)
	var count int64
	err := db.Model(&models.NeighborEdge{}).
		Where("low_profile_id = ? AND high_profile_id = ?", low, high).
		Count(&count).Error
	return count > 0, err
}

// IsMutualUsers is IsMutual with account ids, resolving both profiles first.
func IsMutualUsers(db *gorm.DB, userA, userB uint) (bool, error) {
	if userA == userB {
		return false, nil
	}
	profileA, err := profileOf(db, userA)
	if err != nil {
		return false, err
	}
	profileB, err := profileOf(db, userB)
	if err != nil {
		return false, err
	}
	return IsMutual(db, profileA.ID, profileB.ID)
}

// MutualProfiles lists the mutual neighbors of a profile. When the owner has
// turned neighbor visibility off the list is withheld for every caller.
func MutualProfiles(db *gorm.DB, profileID uint) ([]models.Profile, error) {
	var owner models.Profile
	if err := db.First(&owner, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "profile not found")
		}
		return nil, err
	}
	if !owner.NeighborVisibility {
		return nil, apperr.Wrap(apperr.ErrForbidden, "neighbor list is private")
	}

	ids, err := MutualProfileIDs(db, profileID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Profile{}, nil
	}
	var profiles []models.Profile
	if err := db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// MutualProfileIDs returns the profile ids of a profile's mutual neighbors.
func MutualProfileIDs(db *gorm.DB, profileID uint) ([]uint, error) {
	var edges []models.NeighborEdge
	err := db.Where("low_profile_id = ? OR high_profile_id = ?", profileID, profileID).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.LowProfileID == profileID {
			ids = append(ids, e.HighProfileID)
		} else {
			ids = append(ids, e.LowProfileID)
		}
	}
	return ids, nil
}

// MutualUserIDs returns the account ids of a user's mutual neighbors, for
// feed queries that filter posts by author. Anonymous viewers (id zero)
// have none.
func MutualUserIDs(db *gorm.DB, userID uint) ([]uint, error) {
	if userID == 0 {
		return []uint{}, nil
	}
	profile, err := profileOf(db, userID)
	if err != nil {
		return nil, err
	}
	profileIDs, err := MutualProfileIDs(db, profile.ID)
	if err != nil {
		return nil, err
	}
	if len(profileIDs) == 0 {
		return []uint{}, nil
	}
	var userIDs []uint
	err = db.Model(&models.Profile{}).Where("id IN ?", profileIDs).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func profileOf(db *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "profile for user %d not found", userID)
		}
		return nil, err
	}
	return &profile, nil
}
