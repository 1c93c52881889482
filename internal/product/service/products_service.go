package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bikeshop/internal/domain"
	"bikeshop/internal/errors"
)

type Repository interface {
	FindAll(ctx context.Context, productType string) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	Insert(ctx context.Context, p domain.Product) (uint, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type ProductsService struct {
	repo   Repository
	logger *zap.Logger
}

func NewProductsService(repo Repository, logger *zap.Logger) *ProductsService {
	return &ProductsService{repo: repo, logger: logger}
}

func (s *ProductsService) ListProducts(ctx context.Context, productType string) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, productType)
}

func (s *ProductsService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductsService) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Uint("productId", id), zap.String("type", p.Type))

	return s.repo.FindByID(ctx, id)
}

func (s *ProductsService) UpdateProduct(ctx context.Context, id uint, update domain.Product) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.ID = existing.ID
	if err := s.repo.Update(ctx, update); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.Uint("productId", id))

	return s.repo.FindByID(ctx, id)
}

func (s *ProductsService) DeleteProduct(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	s.logger.Info("product deleted", zap.Uint("productId", id))

	return nil
}
