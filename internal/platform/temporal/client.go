package temporal

import (
	"errors"
	"strings"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal is switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Settings locates the Temporal frontend.
type Settings struct {
	Address   string
	Namespace string
	Disabled  bool
}

func (s Settings) withDefaults() Settings {
	if strings.TrimSpace(s.Address) == "" {
		s.Address = client.DefaultHostPort
	}
	if strings.TrimSpace(s.Namespace) == "" {
		s.Namespace = client.DefaultNamespace
	}
	return s
}

// Dial connects a Temporal client that traces through OpenTelemetry and logs
// through the process slog logger.
func Dial(settings Settings, instruments *platformobservability.Instruments) (client.Client, error) {
	if settings.Disabled {
		return nil, ErrDisabled
	}
	settings = settings.withDefaults()
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  settings.Address,
		Namespace: settings.Namespace,
		Logger:    workerlog.NewStructuredLogger(instruments.EffectiveLogger()),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
