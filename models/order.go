package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending        OrderStatus = "pending"         // placed, awaiting confirmation
	OrderStatusPaymentPending OrderStatus = "payment_pending" // waiting on an online payment
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusAwaiting PaymentStatus = "awaiting_payment"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ParseOrderStatus maps a request string to a known order status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusPaymentPending:
		return OrderStatusPaymentPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// ParsePaymentStatus maps a request string to a known payment status.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(s)) {
	case PaymentStatusPending:
		return PaymentStatusPending, nil
	case PaymentStatusAwaiting:
		return PaymentStatusAwaiting, nil
	case PaymentStatusPaid:
		return PaymentStatusPaid, nil
	case PaymentStatusFailed:
		return PaymentStatusFailed, nil
	case PaymentStatusRefunded:
		return PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// ShippingAddress is snapshotted onto the order as a JSON blob, decoupled from
// whatever address the user later edits on their profile.
type ShippingAddress struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type Order struct {
	ID              uint                                `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef        string                              `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          *uint                               `json:"user_id"`
	User            *User                               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Email           string                              `gorm:"index;not null" json:"email"`
	Items           []OrderItem                         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64                             `json:"total_amount"`
	Status          OrderStatus                         `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod   string                              `json:"payment_method"`
	PaymentStatus   PaymentStatus                       `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentID       string                              `json:"payment_id,omitempty"`
	TransactionID   string                              `json:"transaction_id,omitempty"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `json:"shipping_address"`
	CreatedAt       time.Time                           `json:"created_at"`
}

// OrderItem snapshots the product name and the server-derived unit price at
// the moment of purchase. Rows are created once and never mutated.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
}
