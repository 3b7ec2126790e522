package repository

import "github.com/oksasatya/worksafe-api/internal/domain/entity"

// Page is one slice of a filtered, sorted workstation set.
type Page struct {
	Items      []*entity.Workstation
	PageNumber int
	PageSize   int
	TotalCount int
}

func (p *Page) TotalPages() int {
	if p.PageSize == 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}
