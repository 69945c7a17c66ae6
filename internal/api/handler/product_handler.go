package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/localmart/merchant-platform/internal/core/ports"
)

// ProductHandler serves the products of the merchant's shops.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /shops/:shop_id/products.
//
// @Summary      List a shop's products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string  true  "Shop id"
// @Success      200      {object}  productListResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /shops/{shop_id}/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	products, err := h.service.ListByShop(c.Request().Context(), id, c.Param("shop_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Products: products, Total: len(products)})
}

// Create handles POST /shops/:shop_id/products.
//
// @Summary      Add a product to a shop
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shop_id  path      string                true  "Shop id"
// @Param        body     body      createProductRequest  true  "Product details"
// @Success      201      {object}  domain.Product
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      422      {object}  errorResponse
// @Router       /shops/{shop_id}/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), id, c.Param("shop_id"), toCreateProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Get handles GET /products/:product_id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  domain.Product
// @Failure      401         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /products/{product_id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	product, err := h.service.Get(c.Request().Context(), id, c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update handles PUT /products/:product_id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string                true  "Product id"
// @Param        body        body      updateProductRequest  true  "Fields to change"
// @Success      200         {object}  domain.Product
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Router       /products/{product_id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), id, c.Param("product_id"), toProductUpdate(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
