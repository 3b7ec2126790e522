package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

// ErrNotFound is returned when no workstation exists for the given id.
var ErrNotFound = errors.New("workstation not found")

// WorkstationRepository defines the persistence operations for workstations.
type WorkstationRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Workstation, error)
	Create(ctx context.Context, w *entity.Workstation) error
	Update(ctx context.Context, w *entity.Workstation) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f SearchFilter) (*Page, error)
}
