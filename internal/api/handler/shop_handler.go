package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/merchant-platform/internal/core/ports"
)

// ShopHandler serves the merchant's shops.
type ShopHandler struct {
	service ports.ShopService
}

func NewShopHandler(service ports.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

// List handles GET /shops.
//
// @Summary      List the caller's shops
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  shopListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /shops [get]
func (h *ShopHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	shops, err := h.service.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shopListResponse{Shops: shops, Total: len(shops)})
}

// Create handles POST /shops.
//
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShopRequest  true  "Shop details"
// @Success      201   {object}  domain.Shop
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /shops [post]
func (h *ShopHandler) Create(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.service.Create(c.Request().Context(), id, toCreateShopInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shop)
}

// Get handles GET /shops/:shop_id.
//
// @Summary      Get one of the caller's shops
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string  true  "Shop id"
// @Success      200      {object}  domain.Shop
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /shops/{shop_id} [get]
func (h *ShopHandler) Get(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	shop, err := h.service.Get(c.Request().Context(), id, c.Param("shop_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// Update handles PUT /shops/:shop_id.
//
// @Summary      Update one of the caller's shops
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string             true  "Shop id"
// @Param        body     body      updateShopRequest  true  "Fields to change"
// @Success      200      {object}  domain.Shop
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /shops/{shop_id} [put]
func (h *ShopHandler) Update(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req updateShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.service.Update(c.Request().Context(), id, c.Param("shop_id"), toShopUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// UpdateStatus handles PUT /shops/:shop_id/status.
//
// @Summary      Open or close one of the caller's shops
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string             true  "Shop id"
// @Param        body     body      shopStatusRequest  true  "New status"
// @Success      200      {object}  domain.Shop
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /shops/{shop_id}/status [put]
func (h *ShopHandler) UpdateStatus(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req shopStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.service.UpdateStatus(c.Request().Context(), id, c.Param("shop_id"), toShopStatus(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}
