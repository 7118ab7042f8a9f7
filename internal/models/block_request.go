package models

import "time"

// BlockRequestStatus is the review state of a cardholder's block request.
// Approval and rejection happen in an admin workflow; this service only
// creates requests in the PENDING state.
type BlockRequestStatus string

const (
	BlockRequestPending  BlockRequestStatus = "PENDING"
	BlockRequestApproved BlockRequestStatus = "APPROVED"
	BlockRequestRejected BlockRequestStatus = "REJECTED"
)

// BlockCardRequest is a cardholder-initiated request to deactivate one of
// their own cards. The card reference is nullable so the request survives
// card deletion.
type BlockCardRequest struct {
	ID        uint  `gorm:"primarykey"`
	CardID    *uint `gorm:"index"`
	UserID    uint  `gorm:"not null;index"`
	Reason    string
	Status    BlockRequestStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
