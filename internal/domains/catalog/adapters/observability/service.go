package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogapp "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/application/types"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/franchise-catalog-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateFranchise(ctx context.Context, input types.CreateFranchiseInput) (*domain.Franchise, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateFranchise")
	defer span.End()

	s.logInfo(ctx, "creating franchise", slog.String("franchise.name", input.Name))
	result, err := s.inner.CreateFranchise(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "CreateFranchise", err, "failed to create franchise")
	}
	span.SetAttributes(attribute.Int64("franchise.id", result.ID))
	s.metrics.recordCreated(ctx, "franchise")
	s.logInfo(ctx, "franchise created", slog.Int64("franchise.id", result.ID))
	return result, nil
}

func (s *Service) RenameFranchise(ctx context.Context, input types.RenameInput) (*domain.Franchise, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RenameFranchise", trace.WithAttributes(attribute.Int64("franchise.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "renaming franchise", slog.Int64("franchise.id", input.ID))
	result, err := s.inner.RenameFranchise(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "RenameFranchise", err, "failed to rename franchise", slog.Int64("franchise.id", input.ID))
	}
	s.metrics.recordRenamed(ctx, "franchise")
	s.logInfo(ctx, "franchise renamed", slog.Int64("franchise.id", result.ID), slog.String("franchise.name", result.Name))
	return result, nil
}

func (s *Service) CreateBranch(ctx context.Context, input types.CreateBranchInput) (*domain.Branch, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateBranch", trace.WithAttributes(attribute.Int64("franchise.id", input.FranchiseID)))
	defer span.End()

	s.logInfo(ctx, "creating branch", slog.Int64("franchise.id", input.FranchiseID), slog.String("branch.name", input.Name))
	result, err := s.inner.CreateBranch(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "CreateBranch", err, "failed to create branch", slog.Int64("franchise.id", input.FranchiseID))
	}
	span.SetAttributes(attribute.Int64("branch.id", result.ID))
	s.metrics.recordCreated(ctx, "branch")
	s.logInfo(ctx, "branch created", slog.Int64("branch.id", result.ID))
	return result, nil
}

func (s *Service) RenameBranch(ctx context.Context, input types.RenameInput) (*domain.Branch, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RenameBranch", trace.WithAttributes(attribute.Int64("branch.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "renaming branch", slog.Int64("branch.id", input.ID))
	result, err := s.inner.RenameBranch(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "RenameBranch", err, "failed to rename branch", slog.Int64("branch.id", input.ID))
	}
	s.metrics.recordRenamed(ctx, "branch")
	s.logInfo(ctx, "branch renamed", slog.Int64("branch.id", result.ID), slog.String("branch.name", result.Name))
	return result, nil
}

func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct", trace.WithAttributes(attribute.Int64("branch.id", input.BranchID)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.Int64("branch.id", input.BranchID), slog.String("product.name", input.Name))
	result, err := s.inner.CreateProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "CreateProduct", err, "failed to create product", slog.Int64("branch.id", input.BranchID))
	}
	span.SetAttributes(attribute.Int64("product.id", result.ID))
	s.metrics.recordCreated(ctx, "product")
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.ID), slog.Int("product.stock", result.Stock))
	return result, nil
}

func (s *Service) RenameProduct(ctx context.Context, input types.RenameInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.RenameProduct", trace.WithAttributes(attribute.Int64("product.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "renaming product", slog.Int64("product.id", input.ID))
	result, err := s.inner.RenameProduct(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "RenameProduct", err, "failed to rename product", slog.Int64("product.id", input.ID))
	}
	s.metrics.recordRenamed(ctx, "product")
	s.logInfo(ctx, "product renamed", slog.Int64("product.id", result.ID), slog.String("product.name", result.Name))
	return result, nil
}

func (s *Service) AdjustProductStock(ctx context.Context, input types.AdjustStockInput) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AdjustProductStock", trace.WithAttributes(attribute.Int64("product.id", input.ProductID)))
	defer span.End()

	s.logInfo(ctx, "adjusting product stock", slog.Int64("product.id", input.ProductID))
	result, err := s.inner.AdjustProductStock(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "AdjustProductStock", err, "failed to adjust product stock", slog.Int64("product.id", input.ProductID))
	}
	s.metrics.recordStockAdjusted(ctx)
	s.logInfo(ctx, "product stock adjusted", slog.Int64("product.id", result.ID), slog.Int("product.stock", result.Stock))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, input types.ProductIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.Int64("product.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", input.ID))
	if err := s.inner.DeleteProduct(ctx, input); err != nil {
		return s.handleError(ctx, span, "DeleteProduct", err, "failed to delete product", slog.Int64("product.id", input.ID))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", input.ID))
	return nil
}

func (s *Service) TopProductPerBranch(ctx context.Context, input types.FranchiseIdentifier) ([]domain.TopProduct, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.TopProductPerBranch", trace.WithAttributes(attribute.Int64("franchise.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "loading top products", slog.Int64("franchise.id", input.ID))
	result, err := s.inner.TopProductPerBranch(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, "TopProductPerBranch", err, "failed to load top products", slog.Int64("franchise.id", input.ID))
	}
	span.SetAttributes(attribute.Int("top_products.count", len(result)))
	s.logInfo(ctx, "top products loaded", slog.Int64("franchise.id", input.ID), slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, withTrace(ctx, attrs)...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, withTrace(ctx, attrs)...)
}

// handleError records the failure on the span, logs it and counts it by kind.
// Classified failures are expected outcomes, so they are logged at warn level.
func (s *Service) handleError(ctx context.Context, span trace.Span, operation string, err error, msg string, attrs ...slog.Attr) error {
	kind := catalogapp.KindOf(err)
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if kind != "" {
			span.SetAttributes(attribute.String("catalog.error.kind", kind))
		}
	}
	s.metrics.recordFailure(ctx, operation, kind)
	if kind != "" && s.logger != nil {
		attrs = append(attrs, slog.String("kind", kind), slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelWarn, msg, withTrace(ctx, attrs)...)
		return err
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func withTrace(ctx context.Context, attrs []slog.Attr) []slog.Attr {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return attrs
	}
	return append(attrs,
		slog.String("trace_id", spanCtx.TraceID().String()),
		slog.String("span_id", spanCtx.SpanID().String()),
	)
}

type serviceMetrics struct {
	entitiesCreated  metric.Int64Counter
	renames          metric.Int64Counter
	stockAdjustments metric.Int64Counter
	productsDeleted  metric.Int64Counter
	failures         metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	entitiesCreated, _ := m.Int64Counter("catalog.service.entities_created", metric.WithDescription("Number of catalog entities created"))
	renames, _ := m.Int64Counter("catalog.service.renames", metric.WithDescription("Number of catalog entities renamed"))
	stockAdjustments, _ := m.Int64Counter("catalog.service.stock_adjustments", metric.WithDescription("Number of product stock adjustments"))
	productsDeleted, _ := m.Int64Counter("catalog.service.products_deleted", metric.WithDescription("Number of products deleted"))
	failures, _ := m.Int64Counter("catalog.service.failures", metric.WithDescription("Number of failed catalog operations"))
	return serviceMetrics{
		entitiesCreated:  entitiesCreated,
		renames:          renames,
		stockAdjustments: stockAdjustments,
		productsDeleted:  productsDeleted,
		failures:         failures,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, entity string) {
	if m.entitiesCreated != nil {
		m.entitiesCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
	}
}

func (m serviceMetrics) recordRenamed(ctx context.Context, entity string) {
	if m.renames != nil {
		m.renames.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
	}
}

func (m serviceMetrics) recordStockAdjusted(ctx context.Context) {
	if m.stockAdjustments != nil {
		m.stockAdjustments.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.productsDeleted != nil {
		m.productsDeleted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, operation, kind string) {
	if m.failures == nil {
		return
	}
	if kind == "" {
		kind = "Internal"
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation), attribute.String("kind", kind)))
}

var _ ports.Service = (*Service)(nil)
