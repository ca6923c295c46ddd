package models

import (
	"time"

	"gorm.io/gorm"
)

type FlashDeal struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID          uint      `gorm:"index;not null" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	DiscountPercentage int       `gorm:"not null" json:"discount_percentage"`
	StartTime          time.Time `gorm:"not null" json:"start_time"`
	EndTime            time.Time `gorm:"not null" json:"end_time"`
	IsActive           bool      `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// EffectiveAt reports whether the deal applies at the given instant.
// The window is half-open: [StartTime, EndTime).
func (d FlashDeal) EffectiveAt(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartTime) && now.Before(d.EndTime)
}

// Overlaps reports whether the deal's window intersects [start, end).
func (d FlashDeal) Overlaps(start, end time.Time) bool {
	return d.StartTime.Before(end) && start.Before(d.EndTime)
}

// EffectiveDealsForProducts returns the effective flash deal per product id at
// the given instant. Products without an effective deal are absent from the map.
func EffectiveDealsForProducts(db *gorm.DB, now time.Time, productIDs []uint) (map[uint]FlashDeal, error) {
	deals := make(map[uint]FlashDeal)
	if len(productIDs) == 0 {
		return deals, nil
	}

	var rows []FlashDeal
	if err := db.
		Where("product_id IN ?", productIDs).
		Where("is_active = ?", true).
		Where("start_time <= ? AND end_time > ?", now, now).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	// At most one effective deal per product is assumed; first row wins.
	for _, d := range rows {
		if _, ok := deals[d.ProductID]; !ok {
			deals[d.ProductID] = d
		}
	}
	return deals, nil
}

// EffectiveDealForProduct returns the effective deal for a single product, or
// nil when there is none.
func EffectiveDealForProduct(db *gorm.DB, now time.Time, productID uint) (*FlashDeal, error) {
	deals, err := EffectiveDealsForProducts(db, now, []uint{productID})
	if err != nil {
		return nil, err
	}
	if d, ok := deals[productID]; ok {
		return &d, nil
	}
	return nil, nil
}
