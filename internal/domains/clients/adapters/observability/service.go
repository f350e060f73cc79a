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

	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	clientports "github.com/Apurer/storefront-admin/internal/domains/clients/ports"
)

const tracerName = "github.com/Apurer/storefront-admin/internal/domains/clients/adapters/observability/service"

// Service decorates the client registry with tracing, logging, and metrics.
type Service struct {
	inner   clientports.Service
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

func New(inner clientports.Service, opts ...Option) clientports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
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
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) List(ctx context.Context) []*clientdomain.Client {
	ctx, span := s.tracer.Start(ctx, "ClientService.List")
	defer span.End()
	clients := s.inner.List(ctx)
	span.SetAttributes(attribute.Int("client.count", len(clients)))
	return clients
}

func (s *Service) FindByID(ctx context.Context, id int64) (*clientdomain.Client, error) {
	ctx, span := s.tracer.Start(ctx, "ClientService.FindByID", trace.WithAttributes(attribute.Int64("client.id", id)))
	defer span.End()
	client, err := s.inner.FindByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load client", slog.Int64("client_id", id))
	}
	return client, nil
}

func (s *Service) Search(ctx context.Context, text string) ([]*clientdomain.Client, error) {
	ctx, span := s.tracer.Start(ctx, "ClientService.Search", trace.WithAttributes(attribute.String("client.search", text)))
	defer span.End()
	clients, err := s.inner.Search(ctx, text)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "client search failed")
	}
	span.SetAttributes(attribute.Int("client.count", len(clients)))
	return clients, nil
}

func (s *Service) Create(ctx context.Context, name, taxID string) (*clientdomain.Client, error) {
	ctx, span := s.tracer.Start(ctx, "ClientService.Create", trace.WithAttributes(attribute.String("client.tax_id", taxID)))
	defer span.End()
	s.logInfo(ctx, "creating client", slog.String("tax_id", taxID))
	client, err := s.inner.Create(ctx, name, taxID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create client", slog.String("tax_id", taxID))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "client created", slog.Int64("client_id", client.ID))
	return client, nil
}

func (s *Service) Update(ctx context.Context, id int64, name, taxID string) (*clientdomain.Client, error) {
	ctx, span := s.tracer.Start(ctx, "ClientService.Update", trace.WithAttributes(attribute.Int64("client.id", id)))
	defer span.End()
	client, err := s.inner.Update(ctx, id, name, taxID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update client", slog.Int64("client_id", id))
	}
	s.metrics.recordUpdated(ctx)
	return client, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ClientService.Delete", trace.WithAttributes(attribute.Int64("client.id", id)))
	defer span.End()
	if err := s.inner.Delete(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete client", slog.Int64("client_id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "client deleted", slog.Int64("client_id", id))
	return nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("clients.service.created", metric.WithDescription("Number of clients registered"))
	updated, _ := m.Int64Counter("clients.service.updated", metric.WithDescription("Number of clients updated"))
	deleted, _ := m.Int64Counter("clients.service.deleted", metric.WithDescription("Number of clients deleted"))
	return serviceMetrics{created: created, updated: updated, deleted: deleted}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordUpdated(ctx context.Context) {
	if m.updated != nil {
		m.updated.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	if m.deleted != nil {
		m.deleted.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ clientports.Service = (*Service)(nil)
