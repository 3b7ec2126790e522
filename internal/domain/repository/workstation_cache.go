package repository

import (
	"context"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

// WorkstationCache is a read cache for single workstations. Implementations
// return copies, so callers never share a cached entity.
type WorkstationCache interface {
	Get(ctx context.Context, id int64) (*entity.Workstation, bool, error)
	Set(ctx context.Context, w *entity.Workstation) error
	Delete(ctx context.Context, id int64) error
}
