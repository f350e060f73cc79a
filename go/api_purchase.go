package storefrontserver

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	purchasehttpmapper "github.com/Apurer/storefront-admin/internal/domains/purchases/adapters/http/mapper"
	purchasedomain "github.com/Apurer/storefront-admin/internal/domains/purchases/domain"
	purchaseports "github.com/Apurer/storefront-admin/internal/domains/purchases/ports"
	reporthttpmapper "github.com/Apurer/storefront-admin/internal/domains/reports/adapters/http/mapper"
	reportports "github.com/Apurer/storefront-admin/internal/domains/reports/ports"
)

// CheckoutRunner finalizes the session cart into the ledger.
type CheckoutRunner interface {
	Finalize(ctx context.Context, token string, clientID int64, idempotencyKey string) (*purchasedomain.Receipt, error)
}

// IdempotencyKeyHeader lets clients retry a checkout without buying twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// PurchaseAPI serves checkout, purchase history, and reports.
type PurchaseAPI struct {
	ledger   purchaseports.Service
	checkout CheckoutRunner
	reports  reportports.Service
	renderer reportports.Renderer
}

func NewPurchaseAPI(ledger purchaseports.Service, checkout CheckoutRunner, reports reportports.Service, renderer reportports.Renderer) PurchaseAPI {
	return PurchaseAPI{ledger: ledger, checkout: checkout, reports: reports, renderer: renderer}
}

// Post /v1/clients/:clientId/checkout
// Commits the session cart as purchases of the client
func (api *PurchaseAPI) Checkout(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	receipt, err := api.checkout.Finalize(c.Request.Context(), currentSession(c).Token, clientID, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchasehttpmapper.FromDomainReceipt(receipt))
}

// Get /v1/clients/:clientId/purchases
// Lists the client's purchase lines newest first with their total
func (api *PurchaseAPI) ListPurchases(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	lines, err := api.ledger.ListForClient(ctx, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := api.ledger.TotalForClient(ctx, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchasehttpmapper.FromDomainHistory(clientID, lines, total))
}

// Get /v1/clients/:clientId/checkouts
// Lists the client's checkout receipts newest first
func (api *PurchaseAPI) ListCheckouts(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	receipts, err := api.ledger.ReceiptsForClient(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchasehttpmapper.FromDomainReceipts(receipts))
}

// Get /v1/clients/:clientId/report
// Builds the purchase report as JSON, or as a PDF download when requested
func (api *PurchaseAPI) BuildReport(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	report, err := api.reports.Build(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	if api.renderer == nil || !accepts(c, api.renderer.ContentType()) {
		c.JSON(http.StatusOK, reporthttpmapper.FromDomainReport(report))
		return
	}
	var buf bytes.Buffer
	if err := api.renderer.Render(&buf, report); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename()))
	c.Data(http.StatusOK, api.renderer.ContentType(), buf.Bytes())
}

func accepts(c *gin.Context, contentType string) bool {
	for _, accepted := range strings.Split(c.GetHeader("Accept"), ",") {
		mediaType, _, _ := strings.Cut(accepted, ";")
		if strings.EqualFold(strings.TrimSpace(mediaType), contentType) {
			return true
		}
	}
	return false
}
