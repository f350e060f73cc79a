package mapper

import clientdomain "github.com/Apurer/storefront-admin/internal/domains/clients/domain"

// Client represents the transport-level client payload.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"taxId"`
}

// ClientMutation is the request body for creating or updating a client.
type ClientMutation struct {
	Name  string `json:"name"`
	TaxID string `json:"taxId"`
}

// FromDomainClient converts a domain client into a transport representation.
func FromDomainClient(client *clientdomain.Client) Client {
	if client == nil {
		return Client{}
	}
	return Client{
		ID:    client.ID,
		Name:  client.Name,
		TaxID: client.TaxID,
	}
}

func FromDomainClients(clients []*clientdomain.Client) []Client {
	result := make([]Client, 0, len(clients))
	for _, client := range clients {
		result = append(result, FromDomainClient(client))
	}
	return result
}
