package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	clienthttpmapper "github.com/Apurer/storefront-admin/internal/domains/clients/adapters/http/mapper"
	clientports "github.com/Apurer/storefront-admin/internal/domains/clients/ports"
)

// ClientAPI wires HTTP transport with the client registry.
type ClientAPI struct {
	service clientports.Service
}

// NewClientAPI creates a ClientAPI backed by the provided service.
func NewClientAPI(service clientports.Service) ClientAPI {
	return ClientAPI{service: service}
}

// Get /v1/clients
// Lists clients sorted by name, or searches them when q is present
func (api *ClientAPI) ListClients(c *gin.Context) {
	ctx := c.Request.Context()
	if text, ok := c.GetQuery("q"); ok {
		found, err := api.service.Search(ctx, text)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, clienthttpmapper.FromDomainClients(found))
		return
	}
	c.JSON(http.StatusOK, clienthttpmapper.FromDomainClients(api.service.List(ctx)))
}

// Get /v1/clients/:clientId
// Find client by ID
func (api *ClientAPI) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	client, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clienthttpmapper.FromDomainClient(client))
}

// Post /v1/clients
// Registers a new client
func (api *ClientAPI) CreateClient(c *gin.Context) {
	var payload clienthttpmapper.ClientMutation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), payload.Name, payload.TaxID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clienthttpmapper.FromDomainClient(created))
}

// Put /v1/clients/:clientId
// Updates the name and tax id of a client
func (api *ClientAPI) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	var payload clienthttpmapper.ClientMutation
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), id, payload.Name, payload.TaxID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clienthttpmapper.FromDomainClient(updated))
}

// Delete /v1/clients/:clientId
// Deletes a client without purchases
func (api *ClientAPI) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
