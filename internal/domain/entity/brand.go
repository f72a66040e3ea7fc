package entity

import "time"

// Brand marca comercial de un producto.
type Brand struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
