package dto

// PageRequest pagination for list endpoints.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage applies defaults when Limit/Offset are unset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Entity     string `json:"entity,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Dependents int    `json:"dependents,omitempty"`
}
