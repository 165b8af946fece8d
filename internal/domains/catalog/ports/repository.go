package ports

import (
	"context"
	"errors"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
)

var (
	// ErrNotFound is returned by gateways when the addressed record does not exist.
	ErrNotFound = errors.New("catalog record not found")
	// ErrDuplicate is returned when storage rejects a write because of a uniqueness constraint.
	ErrDuplicate = errors.New("catalog record violates a uniqueness constraint")
	// ErrIDAssigned is returned by Create when the caller supplied an identifier.
	ErrIDAssigned = errors.New("id must be empty on create")
)

// FranchiseRepository persists franchises. Names are unique across all franchises.
type FranchiseRepository interface {
	// ExistsByName reports whether a franchise already uses name. No row means false.
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Franchise, error)
	Create(ctx context.Context, franchise *domain.Franchise) (*domain.Franchise, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Franchise, error)
}

// BranchRepository persists branches. Names are unique per franchise.
type BranchRepository interface {
	ExistsByFranchiseIDAndName(ctx context.Context, franchiseID int64, name string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
	Create(ctx context.Context, branch *domain.Branch) (*domain.Branch, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Branch, error)
}

// ProductRepository persists products. Names are unique per branch.
type ProductRepository interface {
	ExistsByBranchIDAndName(ctx context.Context, branchID int64, name string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) (*domain.Product, error)
	// DeleteByID must return ErrNotFound when no product was removed.
	DeleteByID(ctx context.Context, id int64) error
}

// TopProductQuery reads the pre-aggregated top-product-per-branch view.
type TopProductQuery interface {
	FindByFranchiseID(ctx context.Context, franchiseID int64) ([]domain.TopProduct, error)
}
