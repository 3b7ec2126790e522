package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/event"
)

// Option pattern
type Option func(*AlertData)

func WithAppName(name string) Option { return func(d *AlertData) { d.AppName = name } }

// WithDetailsURL links the alert to the workstation resource under baseURL.
func WithDetailsURL(baseURL string) Option {
	return func(d *AlertData) {
		if b := strings.TrimRight(strings.TrimSpace(baseURL), "/"); b != "" {
			d.DetailsURL = fmt.Sprintf("%s/api/workstations/%d", b, d.WorkstationID)
		}
	}
}

func WithTime(t time.Time) Option {
	return func(d *AlertData) {
		utc := t.UTC()
		d.EvaluatedAt = utc
		d.EvaluatedText = utc.Format("02 January 2006, 15:04")
	}
}

// Findings lists the checks a workstation fails, in scoring order.
func Findings(s *event.WorkstationSnapshot) []string {
	var out []string
	if s.MonitorDistanceCm < entity.MinSafeMonitorDistanceCm || s.MonitorDistanceCm > entity.MaxSafeMonitorDistanceCm {
		out = append(out, fmt.Sprintf("Monitor distance %d cm is outside %d-%d cm",
			s.MonitorDistanceCm, entity.MinSafeMonitorDistanceCm, entity.MaxSafeMonitorDistanceCm))
	}
	if !s.HasAdjustableChair {
		out = append(out, "No adjustable chair")
	}
	if !s.HasFootrest {
		out = append(out, "No footrest")
	}
	return out
}

// NewRiskAlertData fills the alert from a lifecycle event carrying a snapshot, then applies opts.
func NewRiskAlertData(ev event.WorkstationEvent, opts ...Option) AlertData {
	s := ev.Snapshot
	d := AlertData{
		WorkstationID:      ev.WorkstationID,
		Name:               s.Name,
		EmployeeName:       s.EmployeeName,
		Department:         s.Department,
		MonitorDistanceCm:  s.MonitorDistanceCm,
		HasAdjustableChair: s.HasAdjustableChair,
		HasFootrest:        s.HasFootrest,
		RiskLevel:          s.RiskLevel.String(),
		Findings:           Findings(s),
	}
	if ev.PreviousRisk != nil {
		d.PreviousRisk = ev.PreviousRisk.String()
	}
	WithTime(s.LastEvaluationDate)(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
