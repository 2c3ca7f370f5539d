package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// SearchHandler búsqueda de materiales y exportación de la última búsqueda de la sesión.
type SearchHandler struct {
	search *lookup.SearchUseCase
	export *lookup.ExportUseCase
	log    *logger.Logger
}

// NewSearchHandler construye el handler.
func NewSearchHandler(search *lookup.SearchUseCase, export *lookup.ExportUseCase, log *logger.Logger) *SearchHandler {
	return &SearchHandler{search: search, export: export, log: log}
}

// Search godoc
// @Summary      Buscar SKUs por palabras clave
// @Description  Cada palabra debe aparecer (subcadena, sin distinguir mayúsculas) en alguna columna buscable.
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  true  "Texto libre"
// @Success      200    {array}   object
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	res, err := h.search.Search(c.UserContext(), GetSessionID(c), query)
	if err != nil {
		return writeError(c, h.log.With("query", query), err)
	}
	if res.IsEmpty() {
		return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("No se encontraron resultados para '%s'.", res.Query)})
	}
	return c.JSON(dto.SearchRecords(res))
}

// Export godoc
// @Summary      Exportar la última búsqueda de la sesión
// @Tags         search
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx | pdf"  default(xlsx)
// @Success      200     {file}    binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/export [get]
func (h *SearchHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format")
	doc, err := h.export.Export(c.UserContext(), GetSessionID(c), format)
	if err != nil {
		return writeError(c, h.log.With("format", format), err)
	}
	c.Attachment(doc.FileName)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Send(doc.Body)
}
