package repository

import (
	"math"
	"strings"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	SortByName       = "name"
	SortByDepartment = "department"
	SortByRisk       = "risk"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// SearchFilter selects, orders and pages workstations.
// Nil optional fields mean "no filter"; use NewSearchFilter for defaults.
type SearchFilter struct {
	Department    *string
	RiskLevel     *entity.RiskLevel
	SearchTerm    *string
	SortBy        string
	SortDirection string
	PageNumber    int
	pageSize      int
}

func NewSearchFilter() SearchFilter {
	return SearchFilter{
		SortBy:        SortByName,
		SortDirection: SortAsc,
		PageNumber:    1,
		pageSize:      DefaultPageSize,
	}
}

// SetPageSize stores size clamped to (0, MaxPageSize]; non-positive sizes reset to the default.
func (f *SearchFilter) SetPageSize(size int) {
	switch {
	case size <= 0:
		f.pageSize = DefaultPageSize
	case size > MaxPageSize:
		f.pageSize = MaxPageSize
	default:
		f.pageSize = size
	}
}

func (f SearchFilter) PageSize() int {
	if f.pageSize == 0 {
		return DefaultPageSize
	}
	return f.pageSize
}

// SetRiskLevelToken parses token and applies it as the risk filter. Unknown tokens clear it.
func (f *SearchFilter) SetRiskLevelToken(token string) {
	f.RiskLevel = nil
	if lvl, ok := entity.ParseRiskLevel(token); ok {
		f.RiskLevel = &lvl
	}
}

// DepartmentFilter returns the department substring, or false when no department filter applies.
func (f SearchFilter) DepartmentFilter() (string, bool) {
	if f.Department == nil || strings.TrimSpace(*f.Department) == "" {
		return "", false
	}
	return *f.Department, true
}

// TermFilter returns the trimmed name/employee search term, or false when none applies.
func (f SearchFilter) TermFilter() (string, bool) {
	if f.SearchTerm == nil {
		return "", false
	}
	t := strings.TrimSpace(*f.SearchTerm)
	return t, t != ""
}

// SortKey resolves SortBy to one of the supported keys, falling back to name.
func (f SearchFilter) SortKey() string {
	switch strings.ToLower(strings.TrimSpace(f.SortBy)) {
	case SortByDepartment:
		return SortByDepartment
	case SortByRisk:
		return SortByRisk
	default:
		return SortByName
	}
}

func (f SearchFilter) Descending() bool {
	return strings.EqualFold(strings.TrimSpace(f.SortDirection), SortDesc)
}

// EffectivePageNumber is the page actually served: pages below 1 are served as page 1.
func (f SearchFilter) EffectivePageNumber() int {
	if f.PageNumber < 1 {
		return 1
	}
	return f.PageNumber
}

// Offset saturates at math.MaxInt so huge page numbers yield an empty page.
func (f SearchFilter) Offset() int {
	skipped, size := f.EffectivePageNumber()-1, f.PageSize()
	if skipped > math.MaxInt/size {
		return math.MaxInt
	}
	return skipped * size
}
