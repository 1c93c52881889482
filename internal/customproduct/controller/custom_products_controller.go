package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bikeshop/internal/customproduct/usecase"
	"bikeshop/internal/dto"
	apperrors "bikeshop/internal/errors"
	"bikeshop/internal/events"
)

type UseCase interface {
	List(ctx context.Context) ([]dto.CustomProductDTO, error)
	Get(ctx context.Context, id uint) (*dto.CustomProductDTO, error)
	Create(ctx context.Context, req dto.CreateCustomProductRequest) (*dto.CustomProductDTO, error)
	Update(ctx context.Context, id uint, req dto.UpdateCustomProductRequest) (*dto.CustomProductDTO, error)
	ReplaceParts(ctx context.Context, id uint, partIDs []uint) (*dto.CustomProductDTO, error)
	AttachPart(ctx context.Context, id uint, partID uint) (*dto.CustomProductDTO, error)
	Delete(ctx context.Context, id uint) error
}

type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

type CustomProductsController struct {
	useCase UseCase
	hub     Broadcaster
	logger  *zap.Logger
}

func NewCustomProductsController(useCase UseCase, hub Broadcaster, logger *zap.Logger) *CustomProductsController {
	return &CustomProductsController{
		useCase: useCase,
		hub:     hub,
		logger:  logger,
	}
}

func (c *CustomProductsController) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	products, err := c.useCase.List(r.Context())
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, products)
}

func (c *CustomProductsController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreateCustomProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	created, err := c.useCase.Create(r.Context(), req)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.CustomProductCreated, created)
	c.writeJSON(w, http.StatusCreated, created)
}

func (c *CustomProductsController) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.customProductID(w, r)
	if !ok {
		return
	}

	product, err := c.useCase.Get(r.Context(), id)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, product)
}

func (c *CustomProductsController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.customProductID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateCustomProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Name == nil && req.Price == nil && req.ProductType == nil {
		c.writeValidationError(w, "At least one field (name, price, productType) is required.", apperrors.ValidationDetail{
			Field:   "body",
			Message: "provide name, price or productType",
		})
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		c.writeValidationError(w, "price must be a non-negative number", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a non-negative number",
		})
		return
	}

	updated, err := c.useCase.Update(r.Context(), id, req)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.CustomProductUpdated, updated)
	c.writeJSON(w, http.StatusOK, updated)
}

func (c *CustomProductsController) HandleAttachPart(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.customProductID(w, r)
	if !ok {
		return
	}

	var req dto.AttachPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.PartID == 0 {
		c.writeValidationError(w, "partId is required", apperrors.ValidationDetail{
			Field:   "partId",
			Message: "partId must be a positive integer",
		})
		return
	}

	updated, err := c.useCase.AttachPart(r.Context(), id, req.PartID)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.CustomProductPartsUpdated, updated)
	c.writeJSON(w, http.StatusOK, updated)
}

func (c *CustomProductsController) HandleReplaceParts(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.customProductID(w, r)
	if !ok {
		return
	}

	var req dto.ReplacePartsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	// An empty replacement is a caller input error, rejected before the
	// validator is ever involved.
	if len(req.Parts) == 0 {
		c.writeValidationError(w, "Parts array is required and cannot be empty.", apperrors.ValidationDetail{
			Field:   "parts",
			Message: "parts must be a non-empty array of part ids",
		})
		return
	}
	for _, partID := range req.Parts {
		if partID == 0 {
			c.writeValidationError(w, "each part id must be a positive integer", apperrors.ValidationDetail{
				Field:   "parts",
				Message: "each part id must be a positive integer",
			})
			return
		}
	}

	updated, err := c.useCase.ReplaceParts(r.Context(), id, req.Parts)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.CustomProductPartsUpdated, updated)
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":              "Custom product parts updated successfully.",
		"updatedCustomProduct": updated,
	})
}

func (c *CustomProductsController) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.customProductID(w, r)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), id); err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.CustomProductDeleted, map[string]uint{"id": id})
	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Custom product successfully deleted"})
}

func (c *CustomProductsController) validateCreateRequest(req dto.CreateCustomProductRequest) error {
	if req.Name == "" {
		return apperrors.NewValidationError("name, price, and productType are required.", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if req.ProductType == "" {
		return apperrors.NewValidationError("name, price, and productType are required.", apperrors.ValidationDetail{
			Field:   "productType",
			Message: "productType is required",
		})
	}
	if req.Price.IsNegative() {
		return apperrors.NewValidationError("price must be a non-negative number", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a non-negative number",
		})
	}
	for _, partID := range req.Parts {
		if partID == 0 {
			return apperrors.NewValidationError("each part id must be a positive integer", apperrors.ValidationDetail{
				Field:   "parts",
				Message: "each part id must be a positive integer",
			})
		}
	}
	return nil
}

func (c *CustomProductsController) customProductID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid custom product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *CustomProductsController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

type incompatibleTypeResponse struct {
	Error             string      `json:"error"`
	IncompatibleParts interface{} `json:"incompatibleParts"`
}

func (c *CustomProductsController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CustomProductsController) writeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var typeErr *usecase.IncompatibleTypeError
	if errors.As(err, &typeErr) {
		c.writeJSON(w, http.StatusBadRequest, incompatibleTypeResponse{
			Error:             typeErr.Error(),
			IncompatibleParts: typeErr.IncompatibleParts,
		})
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": nfe.Message})
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	logger.Error("custom product request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *CustomProductsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
