package productcontroller

import (
	"time"

	"github.com/stitchtees/storefront-api/models"
	"github.com/stitchtees/storefront-api/pricing"
	"gorm.io/gorm"
)

// ProductView is the public catalog representation: the product row plus the
// effective flash deal (when one applies) and the resulting sale price.
type ProductView struct {
	models.Product
	FlashDeal *models.FlashDeal `json:"flashDeal,omitempty"`
	SalePrice float64           `json:"sale_price"`
}

// BuildViews joins products against their effective flash deals at the given
// instant and derives each sale price through the pricing package.
func BuildViews(db *gorm.DB, now time.Time, products []models.Product) ([]ProductView, error) {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	deals, err := models.EffectiveDealsForProducts(db, now, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		view := ProductView{Product: p}
		if d, ok := deals[p.ID]; ok {
			deal := d
			view.FlashDeal = &deal
		}
		view.SalePrice = pricing.EffectivePrice(p.Price, view.FlashDeal)
		views = append(views, view)
	}
	return views, nil
}
