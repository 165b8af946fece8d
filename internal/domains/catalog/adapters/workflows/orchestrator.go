package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
	catalogworkflows "github.com/Apurer/franchise-catalog-api/internal/durable/temporal/workflows/catalog"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineWorkflows)(nil)
)

// TemporalWorkflows starts catalog workflows on a Temporal cluster.
type TemporalWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalWorkflows wires a Temporal client into the orchestrator.
func NewTemporalWorkflows(c client.Client) *TemporalWorkflows {
	return &TemporalWorkflows{client: c, taskQueue: catalogworkflows.ProvisioningTaskQueue}
}

// ProvisionFranchise runs the provisioning workflow and waits for its result.
func (o *TemporalWorkflows) ProvisionFranchise(ctx context.Context, input catalogtypes.ProvisionFranchiseInput) (*catalogtypes.ProvisionFranchiseResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal catalog workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildProvisionWorkflowID(input, traceComponent)
	idempotent := strings.TrimSpace(input.IdempotencyKey) != ""
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
		// Without this the client silently hands back a run started by someone else.
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	if idempotent {
		options.WorkflowIDReusePolicy = enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		catalogworkflows.ProvisionFranchiseWorkflowName,
		catalogworkflows.ProvisionFranchiseWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || !idempotent {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result catalogtypes.ProvisionFranchiseResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, reclassify(err)
	}
	return &result, nil
}

// reclassify restores the catalog error taxonomy from a failed activity so transports
// map workflow failures exactly like direct service calls.
func reclassify(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	if classified := catalogapp.Reclassify(appErr.Type(), appErr.Message()); classified != nil {
		return classified
	}
	return err
}

// InlineWorkflows runs provisioning in-process without Temporal, useful for tests or dev fallbacks.
type InlineWorkflows struct {
	service ports.Service
}

// NewInlineWorkflows wraps the catalog service for synchronous execution.
func NewInlineWorkflows(service ports.Service) *InlineWorkflows {
	return &InlineWorkflows{service: service}
}

// ProvisionFranchise creates the franchise, its branches and their products in order.
// The first failure is returned as is and already created entities are kept.
func (o *InlineWorkflows) ProvisionFranchise(ctx context.Context, input catalogtypes.ProvisionFranchiseInput) (*catalogtypes.ProvisionFranchiseResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline catalog workflows not configured")
	}
	franchise, err := o.service.CreateFranchise(ctx, catalogtypes.CreateFranchiseInput{Name: input.Name})
	if err != nil {
		return nil, err
	}
	result := &catalogtypes.ProvisionFranchiseResult{Franchise: franchise}
	for _, branchInput := range input.Branches {
		branch, err := o.service.CreateBranch(ctx, catalogtypes.CreateBranchInput{FranchiseID: franchise.ID, Name: branchInput.Name})
		if err != nil {
			return nil, err
		}
		provisioned := catalogtypes.ProvisionedBranch{Branch: branch}
		for _, productInput := range branchInput.Products {
			product, err := o.service.CreateProduct(ctx, catalogtypes.CreateProductInput{
				BranchID: branch.ID,
				Name:     productInput.Name,
				Stock:    productInput.Stock,
			})
			if err != nil {
				return nil, err
			}
			provisioned.Products = append(provisioned.Products, product)
		}
		result.Branches = append(result.Branches, provisioned)
	}
	return result, nil
}

// buildProvisionWorkflowID keys the run on the idempotency key when the caller sent one.
// Otherwise every request gets its own run, even when several share a trace.
func buildProvisionWorkflowID(input catalogtypes.ProvisionFranchiseInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("catalog-provision-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("catalog-provision-%s-%s", uuid.NewString(), traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
