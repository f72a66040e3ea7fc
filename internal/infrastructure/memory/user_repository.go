package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/cosmetitrack-api/internal/domain"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/entity"
	"github.com/jhoicas/cosmetitrack-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	c conn
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.c.write(func(d *dataset) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrDuplicate
			}
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(func(d *dataset) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(func(d *dataset) error {
		for _, u := range d.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
