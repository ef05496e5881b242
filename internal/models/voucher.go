package models

import "time"

// Voucher is the immutable receipt of a points redemption.
type Voucher struct {
	Code      uint      `gorm:"primaryKey;column:code" json:"code"`
	Username  string    `gorm:"size:50;not null;index" json:"username"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// RedemptionStatus discriminates the outcome of a points redemption.
type RedemptionStatus string

const (
	RedemptionIssued       RedemptionStatus = "issued"
	RedemptionInsufficient RedemptionStatus = "insufficient"
)

// InsufficientPointsMessage is reported when a balance cannot cover a redemption.
const InsufficientPointsMessage = "Insufficient points"

// Redemption is the result of a redemption attempt. Insufficient balance is an
// expected outcome and is reported here rather than as an error.
type Redemption struct {
	Status          RedemptionStatus `json:"status"`
	RemainingPoints int              `json:"remaining_points"`
	Voucher         *Voucher         `json:"voucher,omitempty"`
	Message         string           `json:"message,omitempty"`
}

// Success reports whether a voucher was issued.
func (r Redemption) Success() bool {
	return r.Status == RedemptionIssued
}
