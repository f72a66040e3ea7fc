package entity

import "time"

// Tag etiqueta libre asociada a productos (muchos a muchos).
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
