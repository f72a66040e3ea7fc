package entity

import "time"

// Supplier proveedor de productos.
type Supplier struct {
	ID          string
	Name        string
	Description string
	Contact     string
	Email       string
	Phone       string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
