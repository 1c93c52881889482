package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bikeshop/internal/domain"
	"bikeshop/internal/dto"
	apperrors "bikeshop/internal/errors"
	"bikeshop/internal/events"
)

type Service interface {
	ListParts(ctx context.Context, productType string) ([]domain.Part, error)
	PartOptions(ctx context.Context) (dto.PartOptions, error)
	GetPart(ctx context.Context, id uint) (*domain.Part, error)
	CreatePart(ctx context.Context, p domain.Part) (*domain.Part, error)
	UpdatePart(ctx context.Context, id uint, update domain.Part) (*domain.Part, error)
	PatchPart(ctx context.Context, id uint, patch dto.PatchPartRequest) (*domain.Part, error)
	DeletePart(ctx context.Context, id uint) error
}

type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

type PartsController struct {
	service Service
	hub     Broadcaster
	logger  *zap.Logger
}

func NewPartsController(service Service, hub Broadcaster, logger *zap.Logger) *PartsController {
	return &PartsController{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

func (c *PartsController) HandleListParts(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	parts, err := c.service.ListParts(r.Context(), r.URL.Query().Get("productType"))
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toPartDTOs(parts))
}

func (c *PartsController) HandlePartOptions(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	options, err := c.service.PartOptions(r.Context())
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, options)
}

func (c *PartsController) HandleCreatePart(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.ProductType == "" {
		req.ProductType = domain.DefaultProductType
	}
	if err := validatePartFields(req.Category, req.Value, req.Price.IsNegative(), req.Quantity); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	created, err := c.service.CreatePart(r.Context(), domain.Part{
		ProductType: req.ProductType,
		Category:    req.Category,
		Value:       req.Value,
		Price:       req.Price,
		Quantity:    req.Quantity,
		IsAvailable: isAvailable,
	})
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	partDTO := toPartDTO(*created)
	c.hub.Broadcast(events.PartCreated, partDTO)
	c.writeJSON(w, http.StatusCreated, partDTO)
}

func (c *PartsController) HandleGetPart(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.partID(w, r)
	if !ok {
		return
	}

	part, err := c.service.GetPart(r.Context(), id)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toPartDTO(*part))
}

func (c *PartsController) HandleUpdatePart(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.partID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.ProductType == "" {
		req.ProductType = domain.DefaultProductType
	}
	if err := validatePartFields(req.Category, req.Value, req.Price.IsNegative(), req.Quantity); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	updated, err := c.service.UpdatePart(r.Context(), id, domain.Part{
		ProductType: req.ProductType,
		Category:    req.Category,
		Value:       req.Value,
		Price:       req.Price,
		Quantity:    req.Quantity,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	partDTO := toPartDTO(*updated)
	c.hub.Broadcast(events.PartUpdated, partDTO)
	c.writeJSON(w, http.StatusOK, partDTO)
}

func (c *PartsController) HandlePatchPart(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.partID(w, r)
	if !ok {
		return
	}

	var req dto.PatchPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
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
	if req.Quantity != nil && *req.Quantity < 0 {
		c.writeValidationError(w, "quantity must not be negative", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
		return
	}

	patched, err := c.service.PatchPart(r.Context(), id, req)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	partDTO := toPartDTO(*patched)
	c.hub.Broadcast(events.PartUpdated, partDTO)
	c.writeJSON(w, http.StatusOK, partDTO)
}

func (c *PartsController) HandleDeletePart(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.partID(w, r)
	if !ok {
		return
	}

	if err := c.service.DeletePart(r.Context(), id); err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.PartDeleted, map[string]uint{"id": id})
	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Part deleted successfully"})
}

func validatePartFields(category, value string, negativePrice bool, quantity int) error {
	if category == "" {
		return apperrors.NewValidationError("category is required", apperrors.ValidationDetail{
			Field:   "category",
			Message: "category is required",
		})
	}
	if value == "" {
		return apperrors.NewValidationError("value is required", apperrors.ValidationDetail{
			Field:   "value",
			Message: "value is required",
		})
	}
	if negativePrice {
		return apperrors.NewValidationError("price must be a non-negative number", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a non-negative number",
		})
	}
	if quantity < 0 {
		return apperrors.NewValidationError("quantity must not be negative", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}
	return nil
}

func (c *PartsController) partID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid part id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *PartsController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func toPartDTO(p domain.Part) dto.PartDTO {
	return dto.PartDTO{
		ID:          p.ID,
		ProductType: p.ProductType,
		Category:    p.Category,
		Value:       p.Value,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPartDTOs(parts []domain.Part) []dto.PartDTO {
	dtos := make([]dto.PartDTO, 0, len(parts))
	for _, p := range parts {
		dtos = append(dtos, toPartDTO(p))
	}
	return dtos
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *PartsController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *PartsController) writeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": nfe.Message})
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{"error": ce.Message})
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	logger.Error("part request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *PartsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
