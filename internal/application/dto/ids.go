package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
)

// ValidateID exige formato UUID en filtros por id. Vacío significa sin filtro.
func ValidateID(field, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s no es un id válido", domain.ErrInvalidInput, field)
	}
	return nil
}
