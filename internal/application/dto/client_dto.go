package dto

// CreateClientRequest body for POST /api/clients.
type CreateClientRequest struct {
	Name        string  `json:"name"`
	TaxID       string  `json:"tax_id,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
}

// UpdateClientRequest body for PUT /api/clients/:id.
type UpdateClientRequest = CreateClientRequest

// ClientResponse client in responses.
type ClientResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	TaxID       string  `json:"tax_id,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
}
