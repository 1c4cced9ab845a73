package domain

import (
	"strconv"
	"time"
)

// CREATE TABLE public.products (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id      BIGINT,
//     product_skuid   BIGINT,
//     category_id     BIGINT DEFAULT 0,
//     product_name    TEXT,
//     product_category TEXT,
//     brand           TEXT,
//     unit            TEXT,
//     normal_price    NUMERIC,
//     sale_price      NUMERIC,
//     quantity        NUMERIC,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID       uint64    `gorm:"column:product_id" json:"product_id"`
	ProductSKUID    uint64    `gorm:"column:product_skuid" json:"product_skuid"`
	CategoryID      uint64    `gorm:"column:category_id;default:0" json:"category_id"`
	ProductName     string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	Brand           string    `gorm:"column:brand;type:text" json:"brand"`
	Unit            string    `gorm:"column:unit;type:text" json:"unit"`
	NormalPrice     float64   `gorm:"column:normal_price;type:numeric" json:"normal_price"`
	SalePrice       float64   `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	Quantity        float64   `gorm:"column:quantity;type:numeric" json:"quantity"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// SearchItems returns the quick-pick entries for this product: its name and,
// when set, its SKU. Every entry resolves to the product id.
func (p Product) SearchItems() []SearchableItem {
	id := strconv.FormatUint(p.ID, 10)
	items := []SearchableItem{{ID: id, Text: p.ProductName, Kind: ItemKindProduct}}
	if p.ProductSKUID != 0 {
		items = append(items, SearchableItem{
			ID:   id,
			Text: strconv.FormatUint(p.ProductSKUID, 10),
			Kind: ItemKindSKU,
		})
	}
	return items
}
