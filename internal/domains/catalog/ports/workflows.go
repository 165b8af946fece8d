package ports

import (
	"context"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
)

// WorkflowOrchestrator exposes multi-step catalog operations that may run durably.
type WorkflowOrchestrator interface {
	ProvisionFranchise(ctx context.Context, input types.ProvisionFranchiseInput) (*types.ProvisionFranchiseResult, error)
}
