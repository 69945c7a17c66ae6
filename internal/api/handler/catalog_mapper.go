package handler

import (
	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

// --- Request → Service input ---

func toAddress(a addressRequest) domain.Address {
	return domain.Address{
		Street:     a.Address,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Location: domain.Location{
			Lat: a.Location.Latitude,
			Lng: a.Location.Longitude,
		},
	}
}

func toCreateShopInput(req createShopRequest) ports.CreateShopInput {
	return ports.CreateShopInput{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Address:        toAddress(req.Address),
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		OperatingHours: req.OperatingHours,
		DeliveryRadius: req.DeliveryRadius,
		MinimumOrder:   req.MinimumOrder,
		DeliveryFee:    req.DeliveryFee,
	}
}

func toShopUpdate(req updateShopRequest) domain.ShopUpdate {
	u := domain.ShopUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Phone:          req.Phone,
		Email:          req.Email,
		Website:        req.Website,
		OperatingHours: req.OperatingHours,
		DeliveryRadius: req.DeliveryRadius,
		MinimumOrder:   req.MinimumOrder,
		DeliveryFee:    req.DeliveryFee,
	}
	if req.Address != nil {
		addr := toAddress(*req.Address)
		u.Address = &addr
	}
	return u
}

func toShopStatus(req shopStatusRequest) domain.ShopStatus {
	return domain.ShopStatus{
		IsOpen:          req.IsOpen,
		AcceptingOrders: req.AcceptingOrders,
		Reason:          req.Reason,
	}
}

func toVariants(reqs []variantRequest) []domain.Variant {
	if reqs == nil {
		return nil
	}
	out := make([]domain.Variant, 0, len(reqs))
	for _, v := range reqs {
		out = append(out, domain.Variant{
			Name:          v.Name,
			SKU:           v.SKU,
			MRP:           v.MRP,
			SellingPrice:  v.SellingPrice,
			StockQuantity: v.StockQuantity,
			Weight:        v.Weight,
			Dimensions:    v.Dimensions,
		})
	}
	return out
}

func toCreateProductInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Brand:       req.Brand,
		Images:      req.Images,
		Variants:    toVariants(req.Variants),
	}
}

func toProductUpdate(req updateProductRequest) domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Brand:       req.Brand,
		Images:      req.Images,
		Variants:    toVariants(req.Variants),
		IsActive:    req.IsActive,
	}
}

func toOrderStatusInput(req orderStatusRequest) ports.UpdateOrderStatusInput {
	return ports.UpdateOrderStatusInput{
		Status:        domain.OrderStatus(req.Status),
		MerchantNotes: req.MerchantNotes,
	}
}
