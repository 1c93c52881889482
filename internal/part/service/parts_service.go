package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bikeshop/internal/domain"
	"bikeshop/internal/dto"
	"bikeshop/internal/errors"
)

type Repository interface {
	FindAll(ctx context.Context, productType string) ([]domain.Part, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Part, error)
	FindByID(ctx context.Context, id uint) (*domain.Part, error)
	FindByTypeCategoryValue(ctx context.Context, productType, category, value string) (*domain.Part, error)
	Insert(ctx context.Context, p domain.Part) (uint, error)
	Update(ctx context.Context, p domain.Part) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type PartsService struct {
	repo   Repository
	logger *zap.Logger
}

func NewPartsService(repo Repository, logger *zap.Logger) *PartsService {
	return &PartsService{repo: repo, logger: logger}
}

func (s *PartsService) ListParts(ctx context.Context, productType string) ([]domain.Part, error) {
	return s.repo.FindAll(ctx, productType)
}

// PartOptions groups the catalog into productType -> category -> values.
func (s *PartsService) PartOptions(ctx context.Context) (dto.PartOptions, error) {
	parts, err := s.repo.FindAll(ctx, "")
	if err != nil {
		return nil, err
	}

	options := make(dto.PartOptions)
	for _, p := range parts {
		categories, ok := options[p.ProductType]
		if !ok {
			categories = make(map[string][]string)
			options[p.ProductType] = categories
		}
		if !contains(categories[p.Category], p.Value) {
			categories[p.Category] = append(categories[p.Category], p.Value)
		}
	}

	return options, nil
}

func (s *PartsService) GetPart(ctx context.Context, id uint) (*domain.Part, error) {
	return s.repo.FindByID(ctx, id)
}

// ResolveParts loads the requested part ids and reports which were missing.
func (s *PartsService) ResolveParts(ctx context.Context, ids []uint) (found []domain.Part, missingIDs []uint, err error) {
	found, err = s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[uint]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			missingIDs = append(missingIDs, id)
		}
	}

	return found, missingIDs, nil
}

func (s *PartsService) CreatePart(ctx context.Context, p domain.Part) (*domain.Part, error) {
	existing, err := s.repo.FindByTypeCategoryValue(ctx, p.ProductType, p.Category, p.Value)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("Part with this category, value, and type already exists")
	}

	p.IsAvailable = domain.DeriveAvailability(p.IsAvailable, p.Quantity)

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("part created",
		zap.Uint("partId", id),
		zap.String("productType", p.ProductType),
		zap.String("category", p.Category),
		zap.String("value", p.Value),
	)

	return s.repo.FindByID(ctx, id)
}

func (s *PartsService) UpdatePart(ctx context.Context, id uint, update domain.Part) (*domain.Part, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.ID = existing.ID
	update.IsAvailable = domain.DeriveAvailability(update.IsAvailable, update.Quantity)

	if err := s.repo.Update(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Info("part updated", zap.Uint("partId", id))

	return s.repo.FindByID(ctx, id)
}

func (s *PartsService) PatchPart(ctx context.Context, id uint, patch dto.PatchPartRequest) (*domain.Part, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := *existing
	if patch.ProductType != nil {
		p.ProductType = *patch.ProductType
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Value != nil {
		p.Value = *patch.Value
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.IsAvailable != nil {
		p.IsAvailable = *patch.IsAvailable
	}
	p.IsAvailable = domain.DeriveAvailability(p.IsAvailable, p.Quantity)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("part patched", zap.Uint("partId", id))

	return s.repo.FindByID(ctx, id)
}

func (s *PartsService) DeletePart(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewNotFoundError(fmt.Sprintf("part with id %d not found", id))
	}

	s.logger.Info("part deleted", zap.Uint("partId", id))

	return nil
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
