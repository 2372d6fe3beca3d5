package respond

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/observability"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// Formatter converts any failure into the uniform error envelope. It is
// the single formatting point for both the auth middleware short-circuit
// and normal handler failure propagation, so the two paths produce
// identical response shapes.
type Formatter struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewFormatter builds a formatter.
func NewFormatter(logger *zap.Logger, metrics *observability.Metrics) *Formatter {
	return &Formatter{logger: logger, metrics: metrics}
}

// Failure logs the failure with its kind, message and originating route,
// then writes the {"message", "error"} envelope with the status fixed by
// the failure kind.
func (f *Formatter) Failure(c *fiber.Ctx, err error) error {
	apiErr := util.ToAPIError(err)

	f.logger.Error("request failed",
		zap.String("kind", string(apiErr.Kind)),
		zap.String("message", apiErr.Message),
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Error(apiErr.Err),
	)
	f.metrics.RecordFailure(c.Path(), c.Method(), string(apiErr.Kind))

	body := fiber.Map{"message": apiErr.Message}
	if apiErr.Detail != nil {
		body["error"] = apiErr.Detail
	}
	return c.Status(apiErr.HTTPStatus()).JSON(body)
}
