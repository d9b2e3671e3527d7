package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"vetvox-be/internal/pkg/apperrors"
	"vetvox-be/internal/pkg/logger"
	"vetvox-be/pkg/extract"
)

// ErrorHandlerMiddleware is the single place request errors become HTTP
// responses. Validation problems answer 400 with the real message; unknown
// ids 404; everything upstream (database, model service) answers 5xx with a
// generic body — the detail goes to the log only.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *apperrors.ValidationError
		var notFoundErr *apperrors.NotFoundError
		var upstreamErr *apperrors.UpstreamError
		var malformedErr *extract.MalformedResponseError
		var schemaErr *extract.SchemaValidationError
		var requestErr *extract.RequestError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, extract.ErrEmptyInput):
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))

		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).
				JSON(ErrorResponse(fiber.StatusBadRequest, validationErr.Message))

		case errors.As(err, &notFoundErr):
			return ctx.Status(fiber.StatusNotFound).
				JSON(ErrorResponse(fiber.StatusNotFound, notFoundErr.Error()))

		case errors.As(err, &malformedErr), errors.As(err, &schemaErr):
			log.Error("HTTP", "extraction produced unusable output", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusBadGateway).
				JSON(ErrorResponse(fiber.StatusBadGateway, "analysis service returned an unusable result"))

		case errors.As(err, &requestErr):
			log.Error("HTTP", "extraction request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusBadGateway).
				JSON(ErrorResponse(fiber.StatusBadGateway, "analysis service is unavailable"))

		case errors.As(err, &upstreamErr):
			log.Error("HTTP", "upstream failure", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))

		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).
				JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))

		default:
			log.Error("HTTP", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
		}
	}
}
