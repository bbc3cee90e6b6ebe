package models

import "time"

// NeighborStatus defines the state of a neighbor request between two users.
type NeighborStatus string

const (
	// NeighborPending means a request has been sent but not yet answered.
	NeighborPending NeighborStatus = "pending"

	// NeighborAccepted means the request was accepted and the two users
	// are now mutual neighbors. Accepted is terminal.
	NeighborAccepted NeighborStatus = "accepted"
)

// NeighborRequest is a directed request edge. Rejection deletes the row, so
// only pending and accepted states are ever persisted, and the unique index
// on (from, to) keeps at most one live request per ordered pair.
type NeighborRequest struct {
	ID         uint           `gorm:"primaryKey"`
	FromUserID uint           `gorm:"uniqueIndex:idx_neighbor_request_pair;not null"`
	ToUserID   uint           `gorm:"uniqueIndex:idx_neighbor_request_pair;not null"`
	Message    string         `gorm:"size:255"`
	Status     NeighborStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NeighborEdge is the derived symmetric mutual relation between two profiles.
// The edge is stored once in canonical order (LowProfileID < HighProfileID),
// so the relation can never be half-written or duplicated.
type NeighborEdge struct {
	LowProfileID  uint `gorm:"primaryKey"`
	HighProfileID uint `gorm:"primaryKey"`
	CreatedAt     time.Time
}

// CanonicalPair orders two profile ids for NeighborEdge storage.
func CanonicalPair(a, b uint) (low, high uint) {
	if a < b {
		return a, b
	}
	return b, a
}
