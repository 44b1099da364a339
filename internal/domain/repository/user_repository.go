package repository

import (
	"context"

	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
// Las implementaciones devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
