package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/storefront-admin/internal/domains/cart/domain"
	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	purchaseports "github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
)

const tracerName = "github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/observability/service"

// Service decorates the purchase ledger with tracing, logging, and metrics.
type Service struct {
	inner   purchaseports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

func New(inner purchaseports.Service, opts ...Option) purchaseports.Service {
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
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) Commit(ctx context.Context, clientID int64, lines []cartdomain.Line) (*purchasedomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.Commit", trace.WithAttributes(
		attribute.Int64("client.id", clientID),
		attribute.Int("purchase.lines", len(lines)),
	))
	defer span.End()
	receipt, err := s.inner.Commit(ctx, clientID, lines)
	if err != nil {
		s.metrics.recordFailed(ctx)
		return nil, s.handleError(ctx, span, err, "checkout commit failed", slog.Int64("client_id", clientID))
	}
	s.metrics.recordCommitted(ctx, len(receipt.Lines))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "checkout committed",
		slog.Int64("client_id", clientID),
		slog.Int64("checkout_id", receipt.CheckoutID),
		slog.String("total", receipt.Total.StringFixed(2)),
	)
	return receipt, nil
}

func (s *Service) ListForClient(ctx context.Context, clientID int64) ([]purchasedomain.PurchaseLine, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.ListForClient", trace.WithAttributes(attribute.Int64("client.id", clientID)))
	defer span.End()
	lines, err := s.inner.ListForClient(ctx, clientID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "listing purchases failed", slog.Int64("client_id", clientID))
	}
	return lines, nil
}

func (s *Service) TotalForClient(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.TotalForClient", trace.WithAttributes(attribute.Int64("client.id", clientID)))
	defer span.End()
	total, err := s.inner.TotalForClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, s.handleError(ctx, span, err, "computing purchase total failed", slog.Int64("client_id", clientID))
	}
	return total, nil
}

func (s *Service) ReceiptsForClient(ctx context.Context, clientID int64) ([]purchasedomain.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, "PurchaseService.ReceiptsForClient", trace.WithAttributes(attribute.Int64("client.id", clientID)))
	defer span.End()
	receipts, err := s.inner.ReceiptsForClient(ctx, clientID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "listing receipts failed", slog.Int64("client_id", clientID))
	}
	return receipts, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type serviceMetrics struct {
	checkouts metric.Int64Counter
	lines     metric.Int64Counter
	failures  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	checkouts, _ := m.Int64Counter("purchases.service.checkouts", metric.WithDescription("Number of committed checkouts"))
	lines, _ := m.Int64Counter("purchases.service.lines", metric.WithDescription("Number of purchase lines written"))
	failures, _ := m.Int64Counter("purchases.service.failures", metric.WithDescription("Number of checkouts that failed to commit"))
	return serviceMetrics{checkouts: checkouts, lines: lines, failures: failures}
}

func (m serviceMetrics) recordCommitted(ctx context.Context, lines int) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1)
	}
	if m.lines != nil {
		m.lines.Add(ctx, int64(lines))
	}
}

func (m serviceMetrics) recordFailed(ctx context.Context) {
	if m.failures != nil {
		m.failures.Add(ctx, 1)
	}
}

var _ purchaseports.Service = (*Service)(nil)
