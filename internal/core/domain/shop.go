package domain

import "time"

// Location is a geographic point.
type Location struct {
	Lat float64 `json:"latitude" bson:"lat"`
	Lng float64 `json:"longitude" bson:"lng"`
}

// Address is the physical location of a shop.
type Address struct {
	Street     string   `json:"address" bson:"street"`
	City       string   `json:"city" bson:"city"`
	State      string   `json:"state" bson:"state"`
	PostalCode string   `json:"postal_code" bson:"postal_code"`
	Country    string   `json:"country" bson:"country"`
	Location   Location `json:"location" bson:"location"`
}

// OpeningHours maps a weekday to its open/close times, e.g. "monday" -> {"open": "09:00", "close": "18:00"}.
type OpeningHours map[string]map[string]string

// Shop is a storefront owned by one merchant.
type Shop struct {
	ID              string       `json:"shop_id" bson:"_id"`
	MerchantID      string       `json:"merchant_id" bson:"merchant_id"`
	Name            string       `json:"name" bson:"name"`
	Description     string       `json:"description,omitempty" bson:"description,omitempty"`
	Category        string       `json:"category" bson:"category"`
	Address         Address      `json:"address" bson:"address"`
	Phone           string       `json:"phone" bson:"phone"`
	Email           string       `json:"email,omitempty" bson:"email,omitempty"`
	Website         string       `json:"website,omitempty" bson:"website,omitempty"`
	OperatingHours  OpeningHours `json:"operating_hours" bson:"operating_hours"`
	DeliveryRadius  float64      `json:"delivery_radius" bson:"delivery_radius"`
	MinimumOrder    float64      `json:"minimum_order" bson:"minimum_order"`
	DeliveryFee     float64      `json:"delivery_fee" bson:"delivery_fee"`
	IsOpen          bool         `json:"is_open" bson:"is_open"`
	AcceptingOrders bool         `json:"accepting_orders" bson:"accepting_orders"`
	StatusReason    string       `json:"status_reason,omitempty" bson:"status_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" bson:"updated_at"`
}

// ShopUpdate carries the optional fields of a shop edit. Nil means unchanged.
type ShopUpdate struct {
	Name           *string
	Description    *string
	Category       *string
	Address        *Address
	Phone          *string
	Email          *string
	Website        *string
	OperatingHours OpeningHours
	DeliveryRadius *float64
	MinimumOrder   *float64
	DeliveryFee    *float64
}

// ShopStatus is the open/closed switch of a shop.
type ShopStatus struct {
	IsOpen          bool
	AcceptingOrders bool
	Reason          string
}
