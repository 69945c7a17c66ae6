package domain

import "time"

// Variant is a purchasable version of a product.
type Variant struct {
	Name          string             `json:"name" bson:"name"`
	SKU           string             `json:"sku" bson:"sku"`
	MRP           float64            `json:"mrp" bson:"mrp"`
	SellingPrice  float64            `json:"selling_price" bson:"selling_price"`
	StockQuantity int                `json:"stock_quantity" bson:"stock_quantity"`
	Weight        float64            `json:"weight,omitempty" bson:"weight,omitempty"`
	Dimensions    map[string]float64 `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
}

// Product belongs to one shop. MerchantID is copied from the shop at
// creation so ownership can be checked without loading the shop.
type Product struct {
	ID          string    `json:"product_id" bson:"_id"`
	ShopID      string    `json:"shop_id" bson:"shop_id"`
	MerchantID  string    `json:"merchant_id" bson:"merchant_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category"`
	Subcategory string    `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Brand       string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Images      []string  `json:"images" bson:"images"`
	Variants    []Variant `json:"variants" bson:"variants"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductUpdate carries the optional fields of a product edit.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Subcategory *string
	Brand       *string
	Images      []string
	Variants    []Variant
	IsActive    *bool
}
