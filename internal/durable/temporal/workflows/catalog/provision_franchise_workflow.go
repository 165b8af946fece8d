package catalog

import (
	"go.temporal.io/sdk/workflow"

	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	"github.com/Apurer/franchise-catalog-api/internal/durable/temporal/sequences"
)

const (
	// ProvisionFranchiseWorkflowName is the public identifier for registering the workflow.
	ProvisionFranchiseWorkflowName = "catalog.workflows.ProvisionFranchise"
	// ProvisioningTaskQueue is the queue consumed by the worker processing catalog workflows.
	ProvisioningTaskQueue = "CATALOG_PROVISIONING"
)

// ProvisionFranchiseWorkflowInput captures the onboarding request plus the caller's trace id.
type ProvisionFranchiseWorkflowInput struct {
	Command catalogtypes.ProvisionFranchiseInput
	TraceID string
}

// ProvisionFranchiseWorkflow onboards a franchise with its branches and products.
func ProvisionFranchiseWorkflow(ctx workflow.Context, input ProvisionFranchiseWorkflowInput) (*catalogtypes.ProvisionFranchiseResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("ProvisionFranchiseWorkflow started", withTraceID(input.TraceID, "name", input.Command.Name)...)
	result, err := sequences.RunFranchiseProvisioningSequence(ctx, input.Command)
	if err != nil {
		logger.Error("ProvisionFranchiseWorkflow failed", withTraceID(input.TraceID, "name", input.Command.Name, "error", err)...)
		return nil, err
	}
	logger.Info("ProvisionFranchiseWorkflow completed", withTraceID(input.TraceID, "franchiseId", result.Franchise.ID)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
