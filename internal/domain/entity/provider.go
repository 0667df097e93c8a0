package entity

// Provider representa un proveedor al que se compran mercancías o servicios.
type Provider struct {
	ID           string
	Name         string
	BusinessName string // razón social
	CIF          string
	Address      string
	City         string
	PostalCode   string
	Province     string
	Phone        string
	Email        string
	Note         string
}
