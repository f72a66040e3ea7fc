package usecase

import "github.com/jhoicas/cosmetitrack-api/internal/application/inventory"

// Actor usuario autenticado que ejecuta la operación (se registra en el libro y en los controles de calidad).
type Actor struct {
	ID   string
	Name string
}

func (a Actor) displayName() string {
	if a.Name == "" {
		return inventory.UnknownPerformer
	}
	return a.Name
}
