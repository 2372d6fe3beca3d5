package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/book-catalog/internal/api/respond"
	"github.com/spec-kit/book-catalog/internal/observability"
	"github.com/spec-kit/book-catalog/pkg/util"
)

// RegisterMiddlewares attaches global middlewares. Order matters: the
// error-handling middleware must be outermost so every failure raised
// further down the chain reaches the single formatting point.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, formatter *respond.Formatter, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, formatter))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the top-level formatting point for failures
// propagated from handlers, role guards and business logic. The auth
// middleware writes through the same formatter on its own short-circuit
// path, so the two paths produce identical response shapes.
func errorHandlingMiddleware(logger *zap.Logger, formatter *respond.Formatter) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = util.NewInternal(nil)
			}
			if err != nil {
				_ = formatter.Failure(c, err)
				err = nil
			}
		}()
		return c.Next()
	}
}
