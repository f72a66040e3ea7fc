package entity

import "time"

// ProductImage imagen de un producto. Solo una imagen por producto puede ser la principal.
type ProductImage struct {
	ID        string
	ProductID string
	URL       string
	Alt       string
	IsMain    bool
	CreatedAt time.Time
}
