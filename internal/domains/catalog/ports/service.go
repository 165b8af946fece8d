package ports

import (
	"context"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
)

// Service defines the catalog use cases exposed to adapters (inbound/driving port).
type Service interface {
	CreateFranchise(ctx context.Context, input types.CreateFranchiseInput) (*domain.Franchise, error)
	RenameFranchise(ctx context.Context, input types.RenameInput) (*domain.Franchise, error)
	CreateBranch(ctx context.Context, input types.CreateBranchInput) (*domain.Branch, error)
	RenameBranch(ctx context.Context, input types.RenameInput) (*domain.Branch, error)
	CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error)
	RenameProduct(ctx context.Context, input types.RenameInput) (*domain.Product, error)
	AdjustProductStock(ctx context.Context, input types.AdjustStockInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, input types.ProductIdentifier) error
	TopProductPerBranch(ctx context.Context, input types.FranchiseIdentifier) ([]domain.TopProduct, error)
}
