package api

import (
	"context"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"
	"gorm.io/gorm"

	storefrontserver "github.com/Apurer/storefront-admin/go"

	authmemory "github.com/Apurer/storefront-admin/internal/domains/auth/adapters/memory"
	authobs "github.com/Apurer/storefront-admin/internal/domains/auth/adapters/observability"
	authpostgres "github.com/Apurer/storefront-admin/internal/domains/auth/adapters/persistence/postgres"
	authapp "github.com/Apurer/storefront-admin/internal/domains/auth/application"
	authports "github.com/Apurer/storefront-admin/internal/domains/auth/ports"
	cartmemory "github.com/Apurer/storefront-admin/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/storefront-admin/internal/domains/cart/application"
	catalogyaml "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/yamlfile"
	catalogdomain "github.com/Apurer/storefront-admin/internal/domains/catalog/domain"
	clientmemory "github.com/Apurer/storefront-admin/internal/domains/clients/adapters/memory"
	clientobs "github.com/Apurer/storefront-admin/internal/domains/clients/adapters/observability"
	clientpostgres "github.com/Apurer/storefront-admin/internal/domains/clients/adapters/persistence/postgres"
	clientapp "github.com/Apurer/storefront-admin/internal/domains/clients/application"
	clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"
	clientports "github.com/Apurer/storefront-admin/internal/domains/clients/ports"
	purchasememory "github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/memory"
	purchaseobs "github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/observability"
	purchasepostgres "github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/persistence/postgres"
	purchaseworkflows "github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/workflows"
	purchaseapp "github.com/Apurer/storefront-admin/internal/domains/purchases/application"
	purchaseports "github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
	reportpdf "github.com/Apurer/storefront-admin/internal/domains/reports/adapters/pdf"
	reportapp "github.com/Apurer/storefront-admin/internal/domains/reports/application"
	platformobservability "github.com/Apurer/storefront-admin/internal/platform/observability"
	"github.com/Apurer/storefront-admin/internal/shared/fault"
)

// Components holds the wired services of one process.
type Components struct {
	Catalog   *catalogdomain.Catalog
	Clients   clientports.Service
	Purchases purchaseports.Service
	Auth      authports.Service
	Handlers  storefrontserver.ApiHandleFunctions

	// ClientStore is exposed so contract tests can seed and reset state.
	ClientStore clientports.Repository
}

type assembleOptions struct {
	temporal client.Client
}

// AssembleOption tweaks how Assemble wires the checkout orchestration.
type AssembleOption func(*assembleOptions)

// WithTemporal runs checkouts as durable Temporal workflows.
func WithTemporal(c client.Client) AssembleOption {
	return func(o *assembleOptions) { o.temporal = c }
}

// Assemble builds every bounded context on top of db, or on in-memory
// adapters when db is nil, and seeds the admin when a credential is configured.
func Assemble(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, db *gorm.DB, opts ...AssembleOption) (*Components, error) {
	var options assembleOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	logger := instruments.EffectiveLogger()

	catalog, err := catalogyaml.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("items", len(catalog.List())), slog.String("file", cfg.CatalogFile))

	clientRepo, ledger, keys := buildStores(db)

	corePurchases := purchaseapp.NewService(ledger, clientDirectory{repo: clientRepo}, catalog)
	purchases := purchaseobs.New(
		corePurchases,
		purchaseobs.WithLogger(logger),
		purchaseobs.WithTracer(instruments.Tracer("internal.purchases.application")),
		purchaseobs.WithMeter(instruments.Meter("internal.purchases.application")),
	)
	clients := clientobs.New(
		clientapp.NewService(clientRepo, corePurchases, clientapp.WithLogger(logger)),
		clientobs.WithLogger(logger),
		clientobs.WithTracer(instruments.Tracer("internal.clients.application")),
		clientobs.WithMeter(instruments.Meter("internal.clients.application")),
	)

	carts := cartapp.NewService(cartmemory.NewStore(cartmemory.WithIdleTTL(cfg.SessionTTL)), catalog)

	coreAuth, err := buildAuth(ctx, cfg, db,
		authapp.WithSessionEnded(carts.Discard),
		authapp.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	auth := authobs.New(
		coreAuth,
		authobs.WithLogger(logger),
		authobs.WithTracer(instruments.Tracer("internal.auth.application")),
		authobs.WithMeter(instruments.Meter("internal.auth.application")),
	)

	var orchestrator purchaseports.WorkflowOrchestrator = purchaseworkflows.NewInlineCheckoutWorkflows(purchases)
	if options.temporal != nil {
		orchestrator = purchaseworkflows.NewTemporalCheckoutWorkflows(options.temporal)
	}
	checkout := purchaseapp.NewCheckout(carts, orchestrator,
		purchaseapp.WithCheckoutLogger(logger),
		purchaseapp.WithIdempotency(keys, purchases),
	)

	reports := reportapp.NewService(clients, purchases)

	return &Components{
		Catalog:     catalog,
		Clients:     clients,
		Purchases:   purchases,
		Auth:        auth,
		ClientStore: clientRepo,
		Handlers: storefrontserver.ApiHandleFunctions{
			AuthAPI:     storefrontserver.NewAuthAPI(auth, carts),
			ClientAPI:   storefrontserver.NewClientAPI(clients),
			CatalogAPI:  storefrontserver.NewCatalogAPI(catalog),
			CartAPI:     storefrontserver.NewCartAPI(carts),
			PurchaseAPI: storefrontserver.NewPurchaseAPI(purchases, checkout, reports, reportpdf.NewRenderer()),
			Logger:      logger,
		},
	}, nil
}

func buildStores(db *gorm.DB) (clientports.Repository, purchaseports.Ledger, purchaseports.IdempotencyStore) {
	if db != nil {
		return clientpostgres.NewRepository(db), purchasepostgres.NewLedger(db), purchasepostgres.NewIdempotencyStore(db)
	}
	ledger := purchasememory.NewLedger()
	clients := clientmemory.NewRepository()
	clients.Referenced = ledger.Referenced
	return clients, ledger, purchasememory.NewIdempotencyStore()
}

func buildAuth(ctx context.Context, cfg Config, db *gorm.DB, opts ...authapp.Option) (*authapp.Service, error) {
	var (
		admins   authports.AdminRepository = authmemory.NewAdminRepository()
		sessions authports.SessionStore    = authmemory.NewSessionStore()
	)
	if db != nil {
		admins = authpostgres.NewAdminRepository(db)
		sessions = authpostgres.NewSessionStore(db)
	}
	service := authapp.NewService(admins, sessions, append([]authapp.Option{authapp.WithSessionTTL(cfg.SessionTTL)}, opts...)...)
	if !cfg.Admin.configured() {
		return service, nil
	}
	if err := service.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash); err != nil {
		return nil, fmt.Errorf("seed admin %q: %w", cfg.Admin.Username, err)
	}
	return service, nil
}

// clientDirectory lets the ledger resolve clients straight from the store,
// since the registry itself depends on the ledger for its delete guard.
type clientDirectory struct {
	repo clientports.Repository
}

func (d clientDirectory) FindByID(ctx context.Context, id int64) (*clientdomain.Client, error) {
	client, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fault.Storage("client store", err)
	}
	return client, nil
}
