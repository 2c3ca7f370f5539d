package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// SKUHandler cantidades, ficha y código de barras de un SKU.
type SKUHandler struct {
	quantity *lookup.QuantityUseCase
	sku      *lookup.SKUUseCase
	log      *logger.Logger
}

// NewSKUHandler construye el handler.
func NewSKUHandler(quantity *lookup.QuantityUseCase, sku *lookup.SKUUseCase, log *logger.Logger) *SKUHandler {
	return &SKUHandler{quantity: quantity, sku: sku, log: log}
}

// QuantityDetails godoc
// @Summary      Resumen de cantidades del SKU
// @Tags         skus
// @Produce      json
// @Param        sku_id  query  int  true  "ID del SKU"
// @Success      200     {object}  dto.QuantityDetailsResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/quantity-details [get]
func (h *SKUHandler) QuantityDetails(c *fiber.Ctx) error {
	raw := c.Query("sku_id")
	sum, err := h.quantity.Details(c.UserContext(), raw)
	if err != nil {
		return writeError(c, h.log.With("sku_id", raw), err)
	}
	return c.JSON(dto.NewQuantityDetailsResponse(sum))
}

// Details godoc
// @Summary      Ficha del SKU
// @Tags         skus
// @Produce      json
// @Param        sku_id  path  int  true  "ID del SKU"
// @Success      200     {object}  dto.SKUDetailsResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/skus/{sku_id} [get]
func (h *SKUHandler) Details(c *fiber.Ctx) error {
	raw := c.Params("sku_id")
	out, err := h.sku.Details(c.UserContext(), raw)
	if err != nil {
		return writeError(c, h.log.With("sku_id", raw), err)
	}
	return c.JSON(dto.NewSKUDetailsResponse(out))
}

// Barcode godoc
// @Summary      Imagen del código de barras del SKU
// @Tags         skus
// @Produce      json
// @Param        sku_id  path  int  true  "ID del SKU"
// @Success      200     {object}  dto.BarcodeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/skus/{sku_id}/barcode [get]
func (h *SKUHandler) Barcode(c *fiber.Ctx) error {
	raw := c.Params("sku_id")
	out, err := h.sku.Barcode(c.UserContext(), raw)
	if err != nil {
		return writeError(c, h.log.With("sku_id", raw), err)
	}
	return c.JSON(dto.BarcodeResponse{SkuID: out.SkuID, BarcodeUID: out.UID, BarcodeImageURL: out.ImageURL})
}
