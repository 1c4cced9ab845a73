package middleware

import (
	"context"
	"myBizHub/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderTraceID = "X-Trace-Id"

// TraceID reuses the caller's X-Trace-Id or mints one, echoes it back and
// stores it in the request context for logger.WithContext.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderTraceID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Response().Header().Set(HeaderTraceID, id)
			ctx := context.WithValue(c.Request().Context(), logger.TraceIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
