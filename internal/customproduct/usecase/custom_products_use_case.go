package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bikeshop/internal/compat"
	"bikeshop/internal/domain"
	"bikeshop/internal/dto"
	apperrors "bikeshop/internal/errors"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.CustomProduct, error)
	FindByID(ctx context.Context, id uint) (*domain.CustomProduct, error)
	Insert(ctx context.Context, cp domain.CustomProduct, partIDs []uint) (uint, error)
	UpdateFields(ctx context.Context, cp domain.CustomProduct) error
	ReplaceParts(ctx context.Context, id uint, partIDs []uint) error
	AttachPart(ctx context.Context, id uint, partID uint) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// PartResolver loads catalog parts by id and reports which ids were missing.
type PartResolver interface {
	ResolveParts(ctx context.Context, ids []uint) (found []domain.Part, missingIDs []uint, err error)
}

type Validator interface {
	ValidateAttach(product domain.CustomProduct, newPart domain.Part) *compat.Violation
	ValidateReplaceAll(product domain.CustomProduct, candidateParts []domain.Part) *compat.Violation
	ValidateTypeChange(parts []domain.Part, newType string) []compat.IncompatiblePart
}

// IncompatibleTypeError rejects a product type change and carries every
// attached part that blocks it.
type IncompatibleTypeError struct {
	IncompatibleParts []compat.IncompatiblePart
}

func (e *IncompatibleTypeError) Error() string {
	return "Cannot change productType because some existing parts are incompatible."
}

type CustomProductsUseCase struct {
	repo      Repository
	parts     PartResolver
	validator Validator
	locks     *aggregateLocks
	logger    *zap.Logger
}

func NewCustomProductsUseCase(repo Repository, parts PartResolver, validator Validator, logger *zap.Logger) *CustomProductsUseCase {
	return &CustomProductsUseCase{
		repo:      repo,
		parts:     parts,
		validator: validator,
		locks:     newAggregateLocks(),
		logger:    logger,
	}
}

func (uc *CustomProductsUseCase) List(ctx context.Context) ([]dto.CustomProductDTO, error) {
	products, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.CustomProductDTO, 0, len(products))
	for _, cp := range products {
		dtos = append(dtos, toCustomProductDTO(cp))
	}
	return dtos, nil
}

func (uc *CustomProductsUseCase) Get(ctx context.Context, id uint) (*dto.CustomProductDTO, error) {
	cp, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := toCustomProductDTO(*cp)
	return &result, nil
}

// Create builds a new aggregate, validating any initial part list against the
// declared type and the rule set before anything is persisted.
func (uc *CustomProductsUseCase) Create(ctx context.Context, req dto.CreateCustomProductRequest) (*dto.CustomProductDTO, error) {
	var initialParts []domain.Part
	if len(req.Parts) > 0 {
		found, missing, err := uc.parts.ResolveParts(ctx, req.Parts)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, missingPartsError(missing)
		}
		initialParts = found

		prospective := domain.CustomProduct{ProductType: req.ProductType}
		if violation := uc.validator.ValidateReplaceAll(prospective, initialParts); violation != nil {
			return nil, violationError(violation)
		}
	}

	id, err := uc.repo.Insert(ctx, domain.CustomProduct{
		ProductType: req.ProductType,
		Name:        req.Name,
		Price:       req.Price,
	}, req.Parts)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("custom product created",
		zap.Uint("customProductId", id),
		zap.String("productType", req.ProductType),
		zap.Int("initialParts", len(req.Parts)),
	)

	return uc.Get(ctx, id)
}

// Update changes the aggregate's own fields. A product type change is
// all-or-nothing: if any attached part is incompatible with the new type, the
// whole update is rejected and nothing changes.
func (uc *CustomProductsUseCase) Update(ctx context.Context, id uint, req dto.UpdateCustomProductRequest) (*dto.CustomProductDTO, error) {
	release := uc.locks.acquire(id)
	defer release()

	cp, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ProductType != nil && *req.ProductType != cp.ProductType {
		if incompatible := uc.validator.ValidateTypeChange(cp.Parts, *req.ProductType); len(incompatible) > 0 {
			return nil, &IncompatibleTypeError{IncompatibleParts: incompatible}
		}
		cp.ProductType = *req.ProductType
	}
	if req.Name != nil {
		cp.Name = *req.Name
	}
	if req.Price != nil {
		cp.Price = *req.Price
	}

	if err := uc.repo.UpdateFields(ctx, *cp); err != nil {
		return nil, err
	}

	uc.logger.Info("custom product updated", zap.Uint("customProductId", id))

	return uc.Get(ctx, id)
}

// ReplaceParts swaps the aggregate's whole part set after validating the
// candidate set as the prospective final state.
func (uc *CustomProductsUseCase) ReplaceParts(ctx context.Context, id uint, partIDs []uint) (*dto.CustomProductDTO, error) {
	release := uc.locks.acquire(id)
	defer release()

	cp, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found, missing, err := uc.parts.ResolveParts(ctx, partIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, missingPartsError(missing)
	}

	if violation := uc.validator.ValidateReplaceAll(*cp, found); violation != nil {
		return nil, violationError(violation)
	}

	if err := uc.repo.ReplaceParts(ctx, id, partIDs); err != nil {
		return nil, err
	}

	uc.logger.Info("custom product parts replaced",
		zap.Uint("customProductId", id),
		zap.Int("partCount", len(partIDs)),
	)

	return uc.Get(ctx, id)
}

// AttachPart adds a single part to the aggregate if the validator has no
// objection.
func (uc *CustomProductsUseCase) AttachPart(ctx context.Context, id uint, partID uint) (*dto.CustomProductDTO, error) {
	release := uc.locks.acquire(id)
	defer release()

	cp, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found, missing, err := uc.parts.ResolveParts(ctx, []uint{partID})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("part with id %d not found", partID))
	}

	if violation := uc.validator.ValidateAttach(*cp, found[0]); violation != nil {
		return nil, violationError(violation)
	}

	if err := uc.repo.AttachPart(ctx, id, partID); err != nil {
		return nil, err
	}

	uc.logger.Info("part attached",
		zap.Uint("customProductId", id),
		zap.Uint("partId", partID),
	)

	return uc.Get(ctx, id)
}

func (uc *CustomProductsUseCase) Delete(ctx context.Context, id uint) error {
	release := uc.locks.acquire(id)
	defer release()

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFoundError(fmt.Sprintf("custom product with id %d not found", id))
	}

	uc.logger.Info("custom product deleted", zap.Uint("customProductId", id))

	return nil
}

func violationError(v *compat.Violation) error {
	return apperrors.NewValidationError(v.Message, apperrors.ValidationDetail{
		Field:   v.Category,
		Message: v.Message,
	})
}

func missingPartsError(missing []uint) error {
	ids := make([]string, len(missing))
	for i, id := range missing {
		ids[i] = fmt.Sprintf("%d", id)
	}
	msg := fmt.Sprintf("Some parts do not exist: %s", strings.Join(ids, ", "))
	return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
		Field:   "parts",
		Message: msg,
	})
}

func toCustomProductDTO(cp domain.CustomProduct) dto.CustomProductDTO {
	parts := make([]dto.PartDTO, 0, len(cp.Parts))
	for _, p := range cp.Parts {
		parts = append(parts, dto.PartDTO{
			ID:          p.ID,
			ProductType: p.ProductType,
			Category:    p.Category,
			Value:       p.Value,
			Price:       p.Price,
			Quantity:    p.Quantity,
			IsAvailable: p.IsAvailable,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}

	return dto.CustomProductDTO{
		ID:          cp.ID,
		ProductType: cp.ProductType,
		Name:        cp.Name,
		Price:       cp.Price,
		Parts:       parts,
		CreatedAt:   cp.CreatedAt,
		UpdatedAt:   cp.UpdatedAt,
	}
}
