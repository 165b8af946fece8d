package catalog

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

const (
	// CreateFranchiseActivityName creates the franchise of a provisioning run.
	CreateFranchiseActivityName = "catalog.activities.CreateFranchise"
	// CreateBranchActivityName creates one branch of a provisioning run.
	CreateBranchActivityName = "catalog.activities.CreateBranch"
	// CreateProductActivityName creates one product of a provisioning run.
	CreateProductActivityName = "catalog.activities.CreateProduct"
)

// Activities exposes the catalog create use cases to Temporal workers.
type Activities struct {
	service catalogports.Service
}

func NewActivities(service catalogports.Service) *Activities {
	return &Activities{service: service}
}

func (a *Activities) CreateFranchise(ctx context.Context, input catalogtypes.CreateFranchiseInput) (*catalogdomain.Franchise, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return nil, errors.New("catalog activities not initialized")
	}
	logger.Info("CreateFranchise activity started", "name", input.Name)
	franchise, err := a.service.CreateFranchise(ctx, input)
	if err != nil {
		logger.Error("CreateFranchise activity failed", "name", input.Name, "error", err)
		return nil, asActivityError(err)
	}
	logger.Info("CreateFranchise activity completed", "franchiseId", franchise.ID)
	return franchise, nil
}

func (a *Activities) CreateBranch(ctx context.Context, input catalogtypes.CreateBranchInput) (*catalogdomain.Branch, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return nil, errors.New("catalog activities not initialized")
	}
	logger.Info("CreateBranch activity started", "franchiseId", input.FranchiseID, "name", input.Name)
	branch, err := a.service.CreateBranch(ctx, input)
	if err != nil {
		logger.Error("CreateBranch activity failed", "franchiseId", input.FranchiseID, "error", err)
		return nil, asActivityError(err)
	}
	logger.Info("CreateBranch activity completed", "branchId", branch.ID)
	return branch, nil
}

func (a *Activities) CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*catalogdomain.Product, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		return nil, errors.New("catalog activities not initialized")
	}
	logger.Info("CreateProduct activity started", "branchId", input.BranchID, "name", input.Name)
	product, err := a.service.CreateProduct(ctx, input)
	if err != nil {
		logger.Error("CreateProduct activity failed", "branchId", input.BranchID, "error", err)
		return nil, asActivityError(err)
	}
	logger.Info("CreateProduct activity completed", "productId", product.ID)
	return product, nil
}

// asActivityError stops retries for classified failures and tags them with their kind
// so the workflow caller can rebuild the original classification.
func asActivityError(err error) error {
	kind := catalogapp.KindOf(err)
	if kind == "" {
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), kind, err)
}
