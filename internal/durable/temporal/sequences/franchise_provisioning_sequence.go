package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	catalogactivities "github.com/Apurer/franchise-catalog-api/internal/durable/temporal/activities/catalog"
)

// RunFranchiseProvisioningSequence creates the franchise, then every branch, then the products
// of each branch, one activity at a time. The first failure ends the run; nothing is rolled back.
func RunFranchiseProvisioningSequence(ctx workflow.Context, input catalogtypes.ProvisionFranchiseInput) (*catalogtypes.ProvisionFranchiseResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("franchise provisioning sequence started", "name", input.Name, "branches", len(input.Branches))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var franchise catalogdomain.Franchise
	err := workflow.ExecuteActivity(ctx, catalogactivities.CreateFranchiseActivityName,
		catalogtypes.CreateFranchiseInput{Name: input.Name}).Get(ctx, &franchise)
	if err != nil {
		logger.Error("franchise provisioning sequence failed", "step", "franchise", "error", err)
		return nil, err
	}
	result := &catalogtypes.ProvisionFranchiseResult{Franchise: &franchise}

	for _, branchInput := range input.Branches {
		var branch catalogdomain.Branch
		err := workflow.ExecuteActivity(ctx, catalogactivities.CreateBranchActivityName,
			catalogtypes.CreateBranchInput{FranchiseID: franchise.ID, Name: branchInput.Name}).Get(ctx, &branch)
		if err != nil {
			logger.Error("franchise provisioning sequence failed", "step", "branch", "franchiseId", franchise.ID, "error", err)
			return nil, err
		}
		provisioned := catalogtypes.ProvisionedBranch{Branch: &branch}
		for _, productInput := range branchInput.Products {
			var product catalogdomain.Product
			err := workflow.ExecuteActivity(ctx, catalogactivities.CreateProductActivityName,
				catalogtypes.CreateProductInput{BranchID: branch.ID, Name: productInput.Name, Stock: productInput.Stock}).Get(ctx, &product)
			if err != nil {
				logger.Error("franchise provisioning sequence failed", "step", "product", "branchId", branch.ID, "error", err)
				return nil, err
			}
			provisioned.Products = append(provisioned.Products, &product)
		}
		result.Branches = append(result.Branches, provisioned)
	}
	logger.Info("franchise provisioning sequence completed", "franchiseId", franchise.ID)
	return result, nil
}
