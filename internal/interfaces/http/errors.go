package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// errorStatus traduce un error de dominio a código HTTP y código de error estable.
// Los errores tipados (SchemaMismatch, IncompleteSources) conservan su mensaje porque
// nombran columnas o fuentes, nunca datos sensibles.
func errorStatus(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_QUERY", Message: domain.ErrInvalidQuery.Error()}
	case errors.Is(err, domain.ErrInvalidSkuID):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_SKU_ID", Message: domain.ErrInvalidSkuID.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrNoDataToExport):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "NO_DATA_TO_EXPORT", Message: domain.ErrNoDataToExport.Error()}
	case errors.Is(err, domain.ErrSourceUnavailable):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "SOURCE_UNAVAILABLE", Message: domain.ErrSourceUnavailable.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrSchemaMismatch):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "SCHEMA_MISMATCH", Message: err.Error()}
	case errors.Is(err, domain.ErrIncompleteSources):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INCOMPLETE_SOURCES", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// writeError responde el error y lo registra; 5xx a nivel error, 4xx a nivel warn.
// log ya trae el valor recibido (query, sku_id, format) vía Logger.With.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := errorStatus(err)
	ev := log.Warn()
	if status >= fiber.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Str("path", c.Path()).
		Str("session", GetSessionID(c)).
		Str("code", body.Code).
		Msg("request fallido")
	return c.Status(status).JSON(body)
}
