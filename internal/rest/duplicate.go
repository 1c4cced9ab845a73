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

type DuplicateService interface {
	CheckSupplier(ctx context.Context, candidate domain.PartialRecord) ([]domain.MatchResult, error)
	CheckCustomer(ctx context.Context, candidate domain.PartialRecord) ([]domain.MatchResult, error)
}

type DuplicateHandler struct {
	duplicateService DuplicateService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewDuplicateHandler(duplicateService DuplicateService) *DuplicateHandler {
	return &DuplicateHandler{
		duplicateService: duplicateService,
		validator:        validator.New(),
		timeout:          10 * time.Second,
	}
}

// DuplicateCheckRequest is the record being typed into a create form. The
// fields may be incomplete, so only lengths are checked.
type DuplicateCheckRequest struct {
	Name    string `json:"name" validate:"omitempty,max=255"`
	Email   string `json:"email" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Website string `json:"website" validate:"omitempty,max=2048"`
}

func (r DuplicateCheckRequest) toPartial() domain.PartialRecord {
	return domain.PartialRecord{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Website: r.Website,
	}
}

func (h *DuplicateHandler) CheckSupplier(c echo.Context) error {
	return h.check(c, "supplier", h.duplicateService.CheckSupplier)
}

func (h *DuplicateHandler) CheckCustomer(c echo.Context) error {
	return h.check(c, "customer", h.duplicateService.CheckCustomer)
}

func (h *DuplicateHandler) check(c echo.Context, entity string, run func(context.Context, domain.PartialRecord) ([]domain.MatchResult, error)) error {
	var request DuplicateCheckRequest
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	matches, err := run(ctx, request.toPartial())
	if err != nil {
		logger.WithContext(ctx).Errorw("Failed to check duplicates", "entity", entity, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(matches))
}
