// Package pricing is the single place where discounted prices are derived.
// Every endpoint that exposes a price goes through it so the arithmetic can
// never diverge between the catalog, the cart, and order creation.
package pricing

import (
	"math"
	"time"

	"github.com/stitchtees/storefront-api/models"
)

// EffectiveDeal picks the deal that applies at the given instant, or nil.
// At most one effective deal per product is assumed; the first match wins.
func EffectiveDeal(deals []models.FlashDeal, now time.Time) *models.FlashDeal {
	for i := range deals {
		if deals[i].EffectiveAt(now) {
			return &deals[i]
		}
	}
	return nil
}

// EffectivePrice applies the deal's discount to the base price. A nil deal
// returns the base price rounded to cents. Rounding is half away from zero so
// that stored totals are reproducible instead of being a display concern.
func EffectivePrice(base float64, deal *models.FlashDeal) float64 {
	if deal == nil {
		return RoundCents(base)
	}
	return RoundCents(base * (1 - float64(deal.DiscountPercentage)/100))
}

// RoundCents rounds to two decimal places, half away from zero.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
