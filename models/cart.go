package models

import "time"

// CartItem is a guest-cart line scoped by an opaque session id carried in the
// X-Session-Id header. Uniqueness of (session, product, size, color) is
// enforced by the cart controller, not by a database constraint.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string    `gorm:"index;not null" json:"session_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
