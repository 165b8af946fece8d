package application

import (
	"context"
	"errors"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// Service orchestrates the catalog use cases against the storage gateways.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	franchises  ports.FranchiseRepository
	branches    ports.BranchRepository
	products    ports.ProductRepository
	topProducts ports.TopProductQuery
}

// NewService wires the catalog service with its gateways.
func NewService(
	franchises ports.FranchiseRepository,
	branches ports.BranchRepository,
	products ports.ProductRepository,
	topProducts ports.TopProductQuery,
) *Service {
	return &Service{
		franchises:  franchises,
		branches:    branches,
		products:    products,
		topProducts: topProducts,
	}
}

var _ ports.Service = (*Service)(nil)

const (
	franchiseNotFound = "Franchise not found"
	branchNotFound    = "Branch not found"
	productNotFound   = "Product not found"
)

// CreateFranchise registers a franchise under a globally unique name.
func (s *Service) CreateFranchise(ctx context.Context, input types.CreateFranchiseInput) (*domain.Franchise, error) {
	name, err := domain.NormalizeName(input.Name)
	if err != nil {
		return nil, invalidInput(err)
	}
	return createInScope(ctx, createScope[*domain.Franchise]{
		conflictMsg: "Franchise already exists",
		exists:      s.franchises.ExistsByName,
		persist: func(ctx context.Context, name string) (*domain.Franchise, error) {
			return s.franchises.Create(ctx, &domain.Franchise{Name: name})
		},
	}, name)
}

// RenameFranchise changes a franchise name. Renaming to the current name is a no-op.
func (s *Service) RenameFranchise(ctx context.Context, input types.RenameInput) (*domain.Franchise, error) {
	return renameInScope(ctx, renameScope[*domain.Franchise]{
		notFoundMsg: franchiseNotFound,
		conflictMsg: "Franchise's name already exists",
		find:        s.franchises.FindByID,
		nameOf:      func(f *domain.Franchise) string { return f.Name },
		exists: func(ctx context.Context, _ *domain.Franchise, name string) (bool, error) {
			return s.franchises.ExistsByName(ctx, name)
		},
		update: s.franchises.UpdateName,
	}, input.ID, input.Name)
}

// CreateBranch adds a branch to an existing franchise.
func (s *Service) CreateBranch(ctx context.Context, input types.CreateBranchInput) (*domain.Branch, error) {
	name, err := domain.NormalizeName(input.Name)
	if err != nil {
		return nil, invalidInput(err)
	}
	return createInScope(ctx, createScope[*domain.Branch]{
		conflictMsg:       "Branch already exists for this franchise",
		parentNotFoundMsg: franchiseNotFound,
		ensureParent: func(ctx context.Context) error {
			_, err := s.franchises.FindByID(ctx, input.FranchiseID)
			return classifyLookup(err, franchiseNotFound)
		},
		exists: func(ctx context.Context, name string) (bool, error) {
			return s.branches.ExistsByFranchiseIDAndName(ctx, input.FranchiseID, name)
		},
		persist: func(ctx context.Context, name string) (*domain.Branch, error) {
			return s.branches.Create(ctx, &domain.Branch{FranchiseID: input.FranchiseID, Name: name})
		},
	}, name)
}

// RenameBranch changes a branch name within its franchise.
func (s *Service) RenameBranch(ctx context.Context, input types.RenameInput) (*domain.Branch, error) {
	return renameInScope(ctx, renameScope[*domain.Branch]{
		notFoundMsg: branchNotFound,
		conflictMsg: "Branch's name already exists for this franchise",
		find:        s.branches.FindByID,
		nameOf:      func(b *domain.Branch) string { return b.Name },
		exists: func(ctx context.Context, current *domain.Branch, name string) (bool, error) {
			return s.branches.ExistsByFranchiseIDAndName(ctx, current.FranchiseID, name)
		},
		update: s.branches.UpdateName,
	}, input.ID, input.Name)
}

// CreateProduct adds a product to an existing branch. A nil stock is stored as 0.
func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error) {
	name, err := domain.NormalizeName(input.Name)
	if err != nil {
		return nil, invalidInput(err)
	}
	stock, err := domain.NormalizeStock(input.Stock)
	if err != nil {
		return nil, invalidInput(err)
	}
	return createInScope(ctx, createScope[*domain.Product]{
		conflictMsg:       "Product already exists for this branch",
		parentNotFoundMsg: branchNotFound,
		ensureParent: func(ctx context.Context) error {
			_, err := s.branches.FindByID(ctx, input.BranchID)
			return classifyLookup(err, branchNotFound)
		},
		exists: func(ctx context.Context, name string) (bool, error) {
			return s.products.ExistsByBranchIDAndName(ctx, input.BranchID, name)
		},
		persist: func(ctx context.Context, name string) (*domain.Product, error) {
			return s.products.Create(ctx, &domain.Product{BranchID: input.BranchID, Name: name, Stock: stock})
		},
	}, name)
}

// RenameProduct changes a product name within its branch.
func (s *Service) RenameProduct(ctx context.Context, input types.RenameInput) (*domain.Product, error) {
	return renameInScope(ctx, renameScope[*domain.Product]{
		notFoundMsg: productNotFound,
		conflictMsg: "Product's name already exists for this branch",
		find:        s.products.FindByID,
		nameOf:      func(p *domain.Product) string { return p.Name },
		exists: func(ctx context.Context, current *domain.Product, name string) (bool, error) {
			return s.products.ExistsByBranchIDAndName(ctx, current.BranchID, name)
		},
		update: s.products.UpdateName,
	}, input.ID, input.Name)
}

// AdjustProductStock replaces the stock of a product. The write is issued even when the value is unchanged.
func (s *Service) AdjustProductStock(ctx context.Context, input types.AdjustStockInput) (*domain.Product, error) {
	stock, err := domain.NormalizeStock(input.Stock)
	if err != nil {
		return nil, invalidInput(err)
	}
	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		return nil, classifyLookup(err, productNotFound)
	}
	updated, err := s.products.UpdateStock(ctx, input.ProductID, stock)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, notFound(productNotFound, err)
		}
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteProduct removes a product. Unknown ids surface as NotFound.
func (s *Service) DeleteProduct(ctx context.Context, input types.ProductIdentifier) error {
	if input.ID == 0 {
		return invalidInput(errProductIDRequired)
	}
	if err := s.products.DeleteByID(ctx, input.ID); err != nil {
		return classifyLookup(err, productNotFound)
	}
	return nil
}

// TopProductPerBranch returns the best-stocked product of every branch of an existing franchise.
func (s *Service) TopProductPerBranch(ctx context.Context, input types.FranchiseIdentifier) ([]domain.TopProduct, error) {
	if _, err := s.franchises.FindByID(ctx, input.ID); err != nil {
		return nil, classifyLookup(err, franchiseNotFound)
	}
	return s.topProducts.FindByFranchiseID(ctx, input.ID)
}
