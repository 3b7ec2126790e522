package cache

import (
	"strconv"
	"time"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/repository"
)

var (
	_ repository.WorkstationCache = (*RedisCache)(nil)
	_ repository.WorkstationCache = (*LRUCache)(nil)
)

func workstationKey(id int64) string {
	return "workstation:" + strconv.FormatInt(id, 10)
}

// record is the serialized form of a workstation, derived fields included.
type record struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	EmployeeName       string           `json:"employee_name"`
	Department         string           `json:"department"`
	MonitorDistanceCm  int              `json:"monitor_distance_cm"`
	HasAdjustableChair bool             `json:"has_adjustable_chair"`
	HasFootrest        bool             `json:"has_footrest"`
	RiskLevel          entity.RiskLevel `json:"risk_level"`
	LastEvaluationDate time.Time        `json:"last_evaluation_date"`
}

func toRecord(w *entity.Workstation) record {
	return record{
		ID:                 w.ID,
		Name:               w.Name,
		EmployeeName:       w.EmployeeName,
		Department:         w.Department,
		MonitorDistanceCm:  w.MonitorDistanceCm,
		HasAdjustableChair: w.HasAdjustableChair,
		HasFootrest:        w.HasFootrest,
		RiskLevel:          w.RiskLevel(),
		LastEvaluationDate: w.LastEvaluationDate(),
	}
}

func (r record) restore() *entity.Workstation {
	return entity.RestoreWorkstation(r.ID, r.Name, r.EmployeeName, r.Department, r.MonitorDistanceCm,
		r.HasAdjustableChair, r.HasFootrest, r.RiskLevel, r.LastEvaluationDate)
}
