package dto

// ProviderRequest alta o edición de proveedor.
type ProviderRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	CIF          string `json:"cif"`
	Address      string `json:"address"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Province     string `json:"province"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Note         string `json:"note"`
}

// ProviderResponse proveedor completo.
type ProviderResponse struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName,omitempty"`
	CIF          string `json:"cif,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Province     string `json:"province,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Note         string `json:"note,omitempty"`
}

// ProviderShortResponse entrada de listado de proveedores.
type ProviderShortResponse struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
}
