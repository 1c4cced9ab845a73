package rest

import (
	"context"
	"myBizHub/domain"
	"myBizHub/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type SearchService interface {
	SearchProducts(ctx context.Context, userID uint, query string, limit int) ([]domain.RankedItem, error)
	SearchCustomers(ctx context.Context, userID uint, query string, limit int) ([]domain.RankedCandidate, error)
}

type SearchHandler struct {
	searchService SearchService
	timeout       time.Duration
}

func NewSearchHandler(searchService SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		timeout:       5 * time.Second,
	}
}

func (h *SearchHandler) SearchProducts(c echo.Context) error {
	limit, err := queryInt(c, "n", 0)
	if err != nil || limit < 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid n"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.searchService.SearchProducts(ctx, userID(c), c.QueryParam("q"), limit)
	if err != nil {
		logger.WithContext(ctx).Errorw("Failed to search products", "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *SearchHandler) SearchCustomers(c echo.Context) error {
	limit, err := queryInt(c, "n", 0)
	if err != nil || limit < 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid n"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	candidates, err := h.searchService.SearchCustomers(ctx, userID(c), c.QueryParam("q"), limit)
	if err != nil {
		logger.WithContext(ctx).Errorw("Failed to search customers", "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(candidates))
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
