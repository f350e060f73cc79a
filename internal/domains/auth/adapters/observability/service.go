package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	authapp "github.com/Apurer/storefront-admin/internal/domains/auth/application"
	authdomain "github.com/Apurer/storefront-admin/internal/domains/auth/domain"
	authports "github.com/Apurer/storefront-admin/internal/domains/auth/ports"
)

const tracerName = "github.com/Apurer/storefront-admin/internal/domains/auth/adapters/observability/service"

// Service decorates the authenticator with tracing, logging, and metrics.
// Session tokens are never logged.
type Service struct {
	inner   authports.Service
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

func New(inner authports.Service, opts ...Option) authports.Service {
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

func (s *Service) Login(ctx context.Context, username, password string) (authdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login", trace.WithAttributes(attribute.String("admin.username", username)))
	defer span.End()
	session, err := s.inner.Login(ctx, username, password)
	if err != nil {
		s.metrics.recordLoginFailure(ctx)
		if errors.Is(err, authapp.ErrAuthentication) {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "login rejected", slog.String("username", username))
			return authdomain.Session{}, err
		}
		return authdomain.Session{}, s.handleError(ctx, span, err, "login failed", slog.String("username", username))
	}
	s.metrics.recordLogin(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "admin logged in", slog.String("username", session.Username))
	return session, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (authdomain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()
	session, err := s.inner.Authenticate(ctx, token)
	if err != nil && !errors.Is(err, authapp.ErrUnauthenticated) {
		return authdomain.Session{}, s.handleError(ctx, span, err, "session lookup failed")
	}
	if err == nil {
		span.SetAttributes(attribute.String("admin.username", session.Username))
	}
	return session, err
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
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
	logins        metric.Int64Counter
	loginFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("auth.service.logins", metric.WithDescription("Number of successful logins"))
	failures, _ := m.Int64Counter("auth.service.login_failures", metric.WithDescription("Number of rejected logins"))
	return serviceMetrics{logins: logins, loginFailures: failures}
}

func (m serviceMetrics) recordLogin(ctx context.Context) {
	if m.logins != nil {
		m.logins.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLoginFailure(ctx context.Context) {
	if m.loginFailures != nil {
		m.loginFailures.Add(ctx, 1)
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ authports.Service = (*Service)(nil)
