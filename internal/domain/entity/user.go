package entity

import "time"

// User usuario de la aplicación (la API completa va tras Bearer Token).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
