package entity

// Client representa un cliente al que se emiten facturas de venta.
type Client struct {
	ID         string
	Name       string
	Address    string
	City       string
	PostalCode string
	Province   string
	Phone      string
	Email      string
	Note       string
}
