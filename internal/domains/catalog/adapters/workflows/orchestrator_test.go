package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	catalogworkflows "github.com/Apurer/franchise-catalog-api/internal/durable/temporal/workflows/catalog"
)

func newInline() (*memory.Store, *InlineWorkflows) {
	store := memory.NewStore()
	service := catalogapp.NewService(store.Franchises(), store.Branches(), store.Products(), store.TopProducts())
	return store, NewInlineWorkflows(service)
}

func TestInlineWorkflows_ProvisionFranchise(t *testing.T) {
	store, orchestrator := newInline()
	stock := 3

	result, err := orchestrator.ProvisionFranchise(context.Background(), catalogtypes.ProvisionFranchiseInput{
		Name: "Acme",
		Branches: []catalogtypes.ProvisionBranchInput{
			{Name: "North", Products: []catalogtypes.ProvisionProductInput{{Name: "Cola", Stock: &stock}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Acme", result.Franchise.Name)
	require.Equal(t, 3, result.Branches[0].Products[0].Stock)

	rows, err := store.TopProducts().FindByFranchiseID(context.Background(), result.Franchise.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Cola", rows[0].ProductName)
}

func TestInlineWorkflows_StopsAtFirstFailure(t *testing.T) {
	store, orchestrator := newInline()
	negative := -1

	_, err := orchestrator.ProvisionFranchise(context.Background(), catalogtypes.ProvisionFranchiseInput{
		Name: "Acme",
		Branches: []catalogtypes.ProvisionBranchInput{
			{Name: "North", Products: []catalogtypes.ProvisionProductInput{{Name: "Cola", Stock: &negative}}},
			{Name: "South"},
		},
	})
	require.ErrorIs(t, err, catalogapp.ErrInvalidInput)
	require.EqualError(t, err, "stock cannot be negative")

	exists, err := store.Branches().ExistsByFranchiseIDAndName(context.Background(), 1, "South")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestTemporalWorkflows_NotConfigured(t *testing.T) {
	_, err := NewTemporalWorkflows(nil).ProvisionFranchise(context.Background(), catalogtypes.ProvisionFranchiseInput{Name: "Acme"})
	require.Error(t, err)
}

func TestReclassify(t *testing.T) {
	activityErr := temporal.NewNonRetryableApplicationError("Franchise already exists", catalogapp.KindConflict, nil)
	wrapped := fmt.Errorf("workflow execution error: %w", activityErr)

	err := reclassify(wrapped)
	require.ErrorIs(t, err, catalogapp.ErrConflict)
	require.EqualError(t, err, "Franchise already exists")

	opaque := errors.New("deadline exceeded")
	require.Same(t, opaque, reclassify(opaque))

	unknown := temporal.NewApplicationError("boom", "SomethingElse")
	require.Equal(t, unknown, reclassify(unknown))
}

func TestTemporalWorkflows_ReturnsWorkflowResult(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, catalogworkflows.ProvisionFranchiseWorkflowName, mock.Anything).
		Return(run, nil).Once()
	run.On("Get", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			result := args.Get(1).(*catalogtypes.ProvisionFranchiseResult)
			result.Franchise = &catalogdomain.Franchise{ID: 1, Name: "Acme"}
		}).
		Return(nil).Once()

	result, err := NewTemporalWorkflows(temporalClient).ProvisionFranchise(context.Background(), catalogtypes.ProvisionFranchiseInput{Name: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "Acme", result.Franchise.Name)
	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestTemporalWorkflows_JoinsRunAlreadyStartedForSameIdempotencyKey(t *testing.T) {
	input := catalogtypes.ProvisionFranchiseInput{Name: "Acme", IdempotencyKey: " order-42 "}
	workflowID := buildProvisionWorkflowID(input, "trace")
	require.Equal(t, workflowID, buildProvisionWorkflowID(catalogtypes.ProvisionFranchiseInput{Name: "Other", IdempotencyKey: "order-42"}, "other-trace"))
	require.True(t, strings.HasPrefix(workflowID, "catalog-provision-idem-"))

	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	started := serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "request-1", "run-1")
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, catalogworkflows.ProvisionFranchiseWorkflowName, mock.Anything).
		Run(func(args mock.Arguments) {
			options := args.Get(1).(client.StartWorkflowOptions)
			require.Equal(t, workflowID, options.ID)
			require.True(t, options.WorkflowExecutionErrorWhenAlreadyStarted)
		}).
		Return(nil, started).Once()
	temporalClient.On("GetWorkflow", mock.Anything, workflowID, "run-1").
		Return(run).Once()
	run.On("Get", mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("Franchise already exists", catalogapp.KindConflict, nil)).Once()

	_, err := NewTemporalWorkflows(temporalClient).ProvisionFranchise(context.Background(), input)
	require.ErrorIs(t, err, catalogapp.ErrConflict)
	temporalClient.AssertExpectations(t)
	run.AssertExpectations(t)
}

func TestTemporalWorkflows_AlreadyStartedWithoutKeyIsAnError(t *testing.T) {
	temporalClient := &mocks.Client{}
	started := serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "request-1", "run-1")
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, catalogworkflows.ProvisionFranchiseWorkflowName, mock.Anything).
		Return(nil, started).Once()

	_, err := NewTemporalWorkflows(temporalClient).ProvisionFranchise(context.Background(), catalogtypes.ProvisionFranchiseInput{Name: "Acme"})
	require.ErrorAs(t, err, &started)
	temporalClient.AssertNotCalled(t, "GetWorkflow", mock.Anything, mock.Anything, mock.Anything)
	temporalClient.AssertExpectations(t)
}

func TestTemporalWorkflows_RequestsSharingATraceGetTheirOwnRun(t *testing.T) {
	traceID, err := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := oteltrace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: oteltrace.FlagsSampled,
	}))

	var workflowIDs []string
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, catalogworkflows.ProvisionFranchiseWorkflowName, mock.Anything).
		Run(func(args mock.Arguments) {
			workflowIDs = append(workflowIDs, args.Get(1).(client.StartWorkflowOptions).ID)
		}).
		Return(run, nil).Twice()
	run.On("Get", mock.Anything, mock.Anything).Return(nil).Twice()

	orchestrator := NewTemporalWorkflows(temporalClient)
	_, err = orchestrator.ProvisionFranchise(ctx, catalogtypes.ProvisionFranchiseInput{Name: "Acme"})
	require.NoError(t, err)
	_, err = orchestrator.ProvisionFranchise(ctx, catalogtypes.ProvisionFranchiseInput{Name: "Globex"})
	require.NoError(t, err)

	require.Len(t, workflowIDs, 2)
	require.NotEqual(t, workflowIDs[0], workflowIDs[1])
	for _, id := range workflowIDs {
		require.Contains(t, id, traceID.String())
	}
	temporalClient.AssertNotCalled(t, "GetWorkflow", mock.Anything, mock.Anything, mock.Anything)
}
