package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/storefront-admin/internal/domains/catalog/ports"
)

// CatalogAPI serves the read-only catalog.
type CatalogAPI struct {
	catalog catalogports.Catalog
}

func NewCatalogAPI(catalog catalogports.Catalog) CatalogAPI {
	return CatalogAPI{catalog: catalog}
}

// Get /v1/catalog
func (api *CatalogAPI) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainItems(api.catalog.List()))
}
