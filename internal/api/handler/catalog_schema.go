package handler

import "github.com/localmart/merchant-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Shops ---

type locationRequest struct {
	Latitude  float64 `json:"latitude"  validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

type addressRequest struct {
	Address    string          `json:"address"     validate:"required"`
	City       string          `json:"city"        validate:"required"`
	State      string          `json:"state"       validate:"required"`
	PostalCode string          `json:"postal_code" validate:"required"`
	Country    string          `json:"country"`
	Location   locationRequest `json:"location"`
}

type createShopRequest struct {
	Name           string              `json:"name"            validate:"required,min=2,max=100"`
	Description    string              `json:"description"     validate:"max=500"`
	Category       string              `json:"category"        validate:"required"`
	Address        addressRequest      `json:"address"         validate:"required"`
	Phone          string              `json:"phone"           validate:"required"`
	Email          string              `json:"email"           validate:"omitempty,email"`
	Website        string              `json:"website"         validate:"omitempty,url"`
	OperatingHours domain.OpeningHours `json:"operating_hours"`
	DeliveryRadius float64             `json:"delivery_radius" validate:"gte=0"`
	MinimumOrder   float64             `json:"minimum_order"   validate:"gte=0"`
	DeliveryFee    float64             `json:"delivery_fee"    validate:"gte=0"`
}

type updateShopRequest struct {
	Name           *string             `json:"name"            validate:"omitempty,min=2,max=100"`
	Description    *string             `json:"description"     validate:"omitempty,max=500"`
	Category       *string             `json:"category"`
	Address        *addressRequest     `json:"address"`
	Phone          *string             `json:"phone"`
	Email          *string             `json:"email"           validate:"omitempty,email"`
	Website        *string             `json:"website"         validate:"omitempty,url"`
	OperatingHours domain.OpeningHours `json:"operating_hours"`
	DeliveryRadius *float64            `json:"delivery_radius" validate:"omitempty,gte=0"`
	MinimumOrder   *float64            `json:"minimum_order"   validate:"omitempty,gte=0"`
	DeliveryFee    *float64            `json:"delivery_fee"    validate:"omitempty,gte=0"`
}

type shopStatusRequest struct {
	IsOpen          bool   `json:"is_open"`
	AcceptingOrders bool   `json:"accepting_orders"`
	Reason          string `json:"reason" validate:"max=200"`
}

// --- Products ---

type variantRequest struct {
	Name          string             `json:"name"           validate:"required"`
	SKU           string             `json:"sku"            validate:"required"`
	MRP           float64            `json:"mrp"            validate:"gt=0"`
	SellingPrice  float64            `json:"selling_price"  validate:"gt=0,ltefield=MRP"`
	StockQuantity int                `json:"stock_quantity" validate:"gte=0"`
	Weight        float64            `json:"weight"         validate:"gte=0"`
	Dimensions    map[string]float64 `json:"dimensions"`
}

type createProductRequest struct {
	Name        string           `json:"name"        validate:"required,min=2,max=200"`
	Description string           `json:"description" validate:"max=2000"`
	Category    string           `json:"category"    validate:"required"`
	Subcategory string           `json:"subcategory"`
	Brand       string           `json:"brand"`
	Images      []string         `json:"images"      validate:"dive,url"`
	Variants    []variantRequest `json:"variants"    validate:"required,min=1,dive"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Category    *string          `json:"category"`
	Subcategory *string          `json:"subcategory"`
	Brand       *string          `json:"brand"`
	Images      []string         `json:"images"      validate:"omitempty,dive,url"`
	Variants    []variantRequest `json:"variants"    validate:"omitempty,min=1,dive"`
	IsActive    *bool            `json:"is_active"`
}

// --- Orders ---

type orderStatusRequest struct {
	Status        string `json:"status"         validate:"required,oneof=confirmed preparing ready out_for_delivery delivered cancelled"`
	MerchantNotes string `json:"merchant_notes" validate:"max=500"`
}

// --- Responses ---

type shopListResponse struct {
	Shops []*domain.Shop `json:"shops"`
	Total int            `json:"total"`
}

type productListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
}

type orderListResponse struct {
	Orders []*domain.Order `json:"orders"`
	Total  int             `json:"total"`
}
