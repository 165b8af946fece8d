package redis

import (
	"context"
	"log/slog"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

var _ ports.Service = (*InvalidatingService)(nil)

// InvalidatingService retires the top product cache after every successful write.
// A failed invalidation is logged; the write result still stands and the TTL bounds staleness.
type InvalidatingService struct {
	inner ports.Service
	cache *TopProductCache
}

// NewInvalidatingService decorates inner. A nil cache returns inner unchanged.
func NewInvalidatingService(inner ports.Service, cache *TopProductCache) ports.Service {
	if cache == nil {
		return inner
	}
	return &InvalidatingService{inner: inner, cache: cache}
}

func (s *InvalidatingService) invalidate(ctx context.Context, operation string, err error) {
	if err != nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.cache.logger.WarnContext(ctx, "top products cache invalidation failed",
			slog.String("operation", operation), slog.String("error", err.Error()))
	}
}

func (s *InvalidatingService) CreateFranchise(ctx context.Context, input types.CreateFranchiseInput) (*domain.Franchise, error) {
	franchise, err := s.inner.CreateFranchise(ctx, input)
	s.invalidate(ctx, "CreateFranchise", err)
	return franchise, err
}

func (s *InvalidatingService) RenameFranchise(ctx context.Context, input types.RenameInput) (*domain.Franchise, error) {
	franchise, err := s.inner.RenameFranchise(ctx, input)
	s.invalidate(ctx, "RenameFranchise", err)
	return franchise, err
}

func (s *InvalidatingService) CreateBranch(ctx context.Context, input types.CreateBranchInput) (*domain.Branch, error) {
	branch, err := s.inner.CreateBranch(ctx, input)
	s.invalidate(ctx, "CreateBranch", err)
	return branch, err
}

func (s *InvalidatingService) RenameBranch(ctx context.Context, input types.RenameInput) (*domain.Branch, error) {
	branch, err := s.inner.RenameBranch(ctx, input)
	s.invalidate(ctx, "RenameBranch", err)
	return branch, err
}

func (s *InvalidatingService) CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error) {
	product, err := s.inner.CreateProduct(ctx, input)
	s.invalidate(ctx, "CreateProduct", err)
	return product, err
}

func (s *InvalidatingService) RenameProduct(ctx context.Context, input types.RenameInput) (*domain.Product, error) {
	product, err := s.inner.RenameProduct(ctx, input)
	s.invalidate(ctx, "RenameProduct", err)
	return product, err
}

func (s *InvalidatingService) AdjustProductStock(ctx context.Context, input types.AdjustStockInput) (*domain.Product, error) {
	product, err := s.inner.AdjustProductStock(ctx, input)
	s.invalidate(ctx, "AdjustProductStock", err)
	return product, err
}

func (s *InvalidatingService) DeleteProduct(ctx context.Context, input types.ProductIdentifier) error {
	err := s.inner.DeleteProduct(ctx, input)
	s.invalidate(ctx, "DeleteProduct", err)
	return err
}

func (s *InvalidatingService) TopProductPerBranch(ctx context.Context, input types.FranchiseIdentifier) ([]domain.TopProduct, error) {
	return s.inner.TopProductPerBranch(ctx, input)
}
