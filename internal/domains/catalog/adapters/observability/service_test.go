package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
)

func newDecorated(t *testing.T) (*bytes.Buffer, *tracetest.SpanRecorder, *sdkmetric.ManualReader, *Service) {
	t.Helper()
	store := memory.NewStore()
	core := catalogapp.NewService(store.Franchises(), store.Branches(), store.Products(), store.TopProducts())

	logs := &bytes.Buffer{}
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	svc := New(core,
		WithLogger(slog.New(slog.NewJSONHandler(logs, nil))),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)
	return logs, recorder, reader, svc.(*Service)
}

func counterTotal(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestService_RecordsSuccessfulCreate(t *testing.T) {
	logs, recorder, reader, svc := newDecorated(t)

	franchise, err := svc.CreateFranchise(context.Background(), types.CreateFranchiseInput{Name: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "Acme", franchise.Name)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "CatalogService.CreateFranchise", spans[0].Name())
	require.Equal(t, int64(1), counterTotal(t, reader, "catalog.service.entities_created"))
	require.Contains(t, logs.String(), "franchise created")
	require.Contains(t, logs.String(), "trace_id")
}

func TestService_ClassifiedFailuresAreCountedByKind(t *testing.T) {
	logs, recorder, reader, svc := newDecorated(t)

	_, err := svc.CreateBranch(context.Background(), types.CreateBranchInput{FranchiseID: 9, Name: "North"})
	require.ErrorIs(t, err, catalogapp.ErrNotFound)
	require.EqualError(t, err, "Franchise not found")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events(), 1)
	require.Equal(t, int64(1), counterTotal(t, reader, "catalog.service.failures"))
	require.Contains(t, logs.String(), `"kind":"NotFound"`)
	require.Contains(t, logs.String(), `"level":"WARN"`)
}

func TestService_PassesThroughResults(t *testing.T) {
	_, _, reader, svc := newDecorated(t)
	ctx := context.Background()

	franchise, err := svc.CreateFranchise(ctx, types.CreateFranchiseInput{Name: "Acme"})
	require.NoError(t, err)
	branch, err := svc.CreateBranch(ctx, types.CreateBranchInput{FranchiseID: franchise.ID, Name: "North"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, types.CreateProductInput{BranchID: branch.ID, Name: "Cola"})
	require.NoError(t, err)

	_, err = svc.AdjustProductStock(ctx, types.AdjustStockInput{ProductID: product.ID})
	require.NoError(t, err)
	_, err = svc.RenameProduct(ctx, types.RenameInput{ID: product.ID, Name: "Cola Zero"})
	require.NoError(t, err)

	rows, err := svc.TopProductPerBranch(ctx, types.FranchiseIdentifier{ID: franchise.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Cola Zero", rows[0].ProductName)

	require.NoError(t, svc.DeleteProduct(ctx, types.ProductIdentifier{ID: product.ID}))
	require.Equal(t, int64(3), counterTotal(t, reader, "catalog.service.entities_created"))
	require.Equal(t, int64(1), counterTotal(t, reader, "catalog.service.renames"))
	require.Equal(t, int64(1), counterTotal(t, reader, "catalog.service.stock_adjustments"))
	require.Equal(t, int64(1), counterTotal(t, reader, "catalog.service.products_deleted"))
}

func TestNew_DefaultsAreSafe(t *testing.T) {
	store := memory.NewStore()
	core := catalogapp.NewService(store.Franchises(), store.Branches(), store.Products(), store.TopProducts())
	svc := New(core)

	_, err := svc.RenameFranchise(context.Background(), types.RenameInput{ID: 1, Name: "x"})
	require.ErrorIs(t, err, catalogapp.ErrNotFound)
}
