package entity

import "time"

// Review reseña de un cliente sobre un producto (rating 1..5).
type Review struct {
	ID           string
	ProductID    string
	Rating       int
	Comment      string
	CustomerName string
	CreatedAt    time.Time
}
