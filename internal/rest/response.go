package rest

import (
	"context"
	"errors"
	"myBizHub/domain"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidScope),
		errors.Is(err, domain.ErrEmptyEntityID):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUsageLocked):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// userID reads the id set by the auth middleware; 0 when the route is public.
func userID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}
