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
	ListProducts(ctx context.Context, productType string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uint) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uint, update domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

type ProductsController struct {
	service Service
	hub     Broadcaster
	logger  *zap.Logger
}

func NewProductsController(service Service, hub Broadcaster, logger *zap.Logger) *ProductsController {
	return &ProductsController{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

func (c *ProductsController) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	products, err := c.service.ListProducts(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTOs(products))
}

func (c *ProductsController) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Type == "" {
		req.Type = domain.DefaultProductType
	}
	if err := validateProductFields(req.Name, req.Price.IsNegative()); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	isAvailable := false
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	created, err := c.service.CreateProduct(r.Context(), domain.Product{
		Type:         req.Type,
		Name:         req.Name,
		Price:        req.Price,
		IsAvailable:  isAvailable,
		Restrictions: req.Restrictions,
	})
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	productDTO := toProductDTO(*created)
	c.hub.Broadcast(events.ProductCreated, productDTO)
	c.writeJSON(w, http.StatusCreated, productDTO)
}

func (c *ProductsController) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	product, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(*product))
}

func (c *ProductsController) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Type == "" {
		req.Type = domain.DefaultProductType
	}
	if err := validateProductFields(req.Name, req.Price.IsNegative()); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	updated, err := c.service.UpdateProduct(r.Context(), id, domain.Product{
		Type:         req.Type,
		Name:         req.Name,
		Price:        req.Price,
		IsAvailable:  req.IsAvailable,
		Restrictions: req.Restrictions,
	})
	if err != nil {
		c.writeError(w, err, logger)
		return
	}

	productDTO := toProductDTO(*updated)
	c.hub.Broadcast(events.ProductUpdated, productDTO)
	c.writeJSON(w, http.StatusOK, productDTO)
}

func (c *ProductsController) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteProduct(r.Context(), id); err != nil {
		c.writeError(w, err, logger)
		return
	}

	c.hub.Broadcast(events.ProductDeleted, map[string]uint{"id": id})
	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func validateProductFields(name string, negativePrice bool) error {
	if name == "" {
		return apperrors.NewValidationError("name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
	}
	if negativePrice {
		return apperrors.NewValidationError("price must be a non-negative number", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be a non-negative number",
		})
	}
	return nil
}

func (c *ProductsController) productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid product id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *ProductsController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func toProductDTO(p domain.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:           p.ID,
		Type:         p.Type,
		Name:         p.Name,
		Price:        p.Price,
		IsAvailable:  p.IsAvailable,
		Restrictions: p.Restrictions,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductDTOs(products []domain.Product) []dto.ProductDTO {
	dtos := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, toProductDTO(p))
	}
	return dtos
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *ProductsController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ProductsController) writeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": nfe.Message})
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	logger.Error("product request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *ProductsController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
