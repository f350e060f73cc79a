package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/storefront-admin/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/storefront-admin/internal/domains/cart/ports"
)

// CartAPI manipulates the cart of the calling session.
type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /v1/cart
// Shows the priced session cart
func (api *CartAPI) ViewCart(c *gin.Context) {
	totals, err := api.service.View(c.Request.Context(), currentSession(c).Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainTotals(totals))
}

// Post /v1/cart/items
// Adds a quantity of a catalog item, merging with an existing line
func (api *CartAPI) AddToCart(c *gin.Context) {
	var payload carthttpmapper.AddItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	totals, err := api.service.Add(c.Request.Context(), currentSession(c).Token, payload.ItemID, payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainTotals(totals))
}

// Delete /v1/cart/items/:itemId
// Removes a line; removing an absent item is not an error
func (api *CartAPI) RemoveFromCart(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}
	totals, err := api.service.Remove(c.Request.Context(), currentSession(c).Token, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainTotals(totals))
}

// Delete /v1/cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), currentSession(c).Token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
