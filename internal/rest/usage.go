package rest

import (
	"context"
	"myBizHub/domain"
	"myBizHub/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const defaultRecentWindow = 7 * 24 * time.Hour

type UsageService interface {
	Record(ctx context.Context, scope domain.UsageScope, userID uint, entityID string) ([]domain.UsageRecord, error)
	Recent(ctx context.Context, scope domain.UsageScope, userID uint, within time.Duration) ([]domain.UsageRecord, error)
	Favorites(ctx context.Context, scope domain.UsageScope, userID uint, minCount int) ([]domain.UsageRecord, error)
}

type UsageHandler struct {
	usageService UsageService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewUsageHandler(usageService UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		validator:    validator.New(),
		timeout:      5 * time.Second,
	}
}

type RecordUsageRequest struct {
	EntityID string `json:"entity_id" validate:"required,max=255"`
}

func (h *UsageHandler) Record(c echo.Context) error {
	scope, err := domain.ParseUsageScope(c.Param("scope"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var request RecordUsageRequest
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.usageService.Record(ctx, scope, userID(c), request.EntityID)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(records))
}

func (h *UsageHandler) Recent(c echo.Context) error {
	scope, err := domain.ParseUsageScope(c.Param("scope"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	withinMs, err := queryInt(c, "within_ms", int(defaultRecentWindow.Milliseconds()))
	if err != nil || withinMs <= 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid within_ms"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.usageService.Recent(ctx, scope, userID(c), time.Duration(withinMs)*time.Millisecond)
	if err != nil {
		logger.WithContext(ctx).Errorw("Failed to get recent usage", "scope", scope, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}

func (h *UsageHandler) Favorites(c echo.Context) error {
	scope, err := domain.ParseUsageScope(c.Param("scope"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	minCount, err := queryInt(c, "min_count", 1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid min_count"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.usageService.Favorites(ctx, scope, userID(c), minCount)
	if err != nil {
		logger.WithContext(ctx).Errorw("Failed to get favorite usage", "scope", scope, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}
