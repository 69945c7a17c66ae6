package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

// OrderHandler serves the orders placed at the merchant's shops.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /shops/:shop_id/orders.
//
// @Summary      List a shop's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string  true   "Shop id"
// @Param        status   query     string  false  "Only orders in this status"
// @Success      200      {object}  orderListResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /shops/{shop_id}/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	status := domain.OrderStatus(c.QueryParam("status"))
	orders, err := h.service.ListByShop(c.Request().Context(), id, c.Param("shop_id"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderListResponse{Orders: orders, Total: len(orders)})
}

// UpdateStatus handles PUT /orders/:order_id/status.
//
// @Summary      Move an order along its lifecycle
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string              true  "Order id"
// @Param        body      body      orderStatusRequest  true  "New status"
// @Success      200       {object}  domain.Order
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /orders/{order_id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), id, c.Param("order_id"), toOrderStatusInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
