package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/repository"
)

// WorkstationRepository keeps workstations in process memory.
// Used for local runs (STORAGE_DRIVER=memory) and as the storage double in tests.
type WorkstationRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]entity.Workstation
}

func NewWorkstationRepository() *WorkstationRepository {
	return &WorkstationRepository{rows: make(map[int64]entity.Workstation)}
}

func (r *WorkstationRepository) GetByID(ctx context.Context, id int64) (*entity.Workstation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *WorkstationRepository) Create(ctx context.Context, w *entity.Workstation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	w.ID = r.nextID
	r.rows[w.ID] = *w
	return nil
}

func (r *WorkstationRepository) Update(ctx context.Context, w *entity.Workstation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[w.ID]; !ok {
		return repository.ErrNotFound
	}
	r.rows[w.ID] = *w
	return nil
}

func (r *WorkstationRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// Search filters, sorts, counts and pages in that order.
func (r *WorkstationRepository) Search(ctx context.Context, f repository.SearchFilter) (*repository.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := make([]entity.Workstation, 0, len(r.rows))
	for _, w := range r.rows {
		if matches(w, f) {
			matched = append(matched, w)
		}
	}
	r.mu.RUnlock()

	less := lessFunc(f.SortKey())
	desc := f.Descending()
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if less(a, b) {
			return !desc
		}
		if less(b, a) {
			return desc
		}
		return a.ID < b.ID
	})

	total := len(matched)
	size := f.PageSize()
	start := min(max(f.Offset(), 0), total)
	end := start + min(size, total-start)

	items := make([]*entity.Workstation, 0, end-start)
	for i := start; i < end; i++ {
		w := matched[i]
		items = append(items, &w)
	}
	return &repository.Page{
		Items:      items,
		PageNumber: f.EffectivePageNumber(),
		PageSize:   size,
		TotalCount: total,
	}, nil
}

func matches(w entity.Workstation, f repository.SearchFilter) bool {
	if dept, ok := f.DepartmentFilter(); ok && !strings.Contains(w.Department, dept) {
		return false
	}
	if f.RiskLevel != nil && w.RiskLevel() != *f.RiskLevel {
		return false
	}
	if term, ok := f.TermFilter(); ok {
		if !strings.Contains(w.Name, term) && !strings.Contains(w.EmployeeName, term) {
			return false
		}
	}
	return true
}

func lessFunc(key string) func(a, b entity.Workstation) bool {
	switch key {
	case repository.SortByDepartment:
		return func(a, b entity.Workstation) bool { return a.Department < b.Department }
	case repository.SortByRisk:
		return func(a, b entity.Workstation) bool { return a.RiskLevel() < b.RiskLevel() }
	default:
		return func(a, b entity.Workstation) bool { return a.Name < b.Name }
	}
}

var _ repository.WorkstationRepository = (*WorkstationRepository)(nil)
