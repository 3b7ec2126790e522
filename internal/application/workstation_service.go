package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/internal/domain/event"
	repo "github.com/oksasatya/worksafe-api/internal/domain/repository"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/report"
	"github.com/oksasatya/worksafe-api/internal/infrastructure/search"
	"github.com/oksasatya/worksafe-api/internal/observability/metrics"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

var (
	ErrWorkstationNotFound = errors.New("workstation not found")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrReportsUnavailable  = errors.New("report storage not configured")
)

const (
	sideEffectTimeout = 2 * time.Second

	defaultLookupSize = 10
	maxLookupSize     = 50

	// maxExportRows bounds a single export or report.
	maxExportRows = 5000

	cacheStripes = 64
)

type SearchIndex interface {
	Index(ctx context.Context, w *entity.Workstation) error
	Remove(ctx context.Context, id int64) error
	Lookup(ctx context.Context, q string, size int) ([]search.Hit, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev event.WorkstationEvent) error
}

type ReportStore interface {
	Save(ctx context.Context, ext, contentType string, content []byte) (string, error)
}

// cacheStripe serializes cache fills against invalidations for the ids it covers.
// gen counts invalidations; a fill is dropped when gen moved since its load began.
type cacheStripe struct {
	mu  sync.Mutex
	gen uint64
}

// Service coordinates the repository with the cache, search index, event
// publisher and report store. Everything except Repo is optional.
type Service struct {
	Repo    repo.WorkstationRepository
	Cache   repo.WorkstationCache
	Index   SearchIndex
	Events  EventPublisher
	Reports ReportStore
	Logger  *logrus.Logger

	stripes [cacheStripes]cacheStripe
}

func NewService(r repo.WorkstationRepository, cache repo.WorkstationCache, index SearchIndex, events EventPublisher, reports ReportStore, logger *logrus.Logger) *Service {
	return &Service{
		Repo:    r,
		Cache:   cache,
		Index:   index,
		Events:  events,
		Reports: reports,
		Logger:  logger,
	}
}

// WorkstationInput is the full set of writable fields. No partial updates.
type WorkstationInput struct {
	Name               string
	EmployeeName       string
	Department         string
	MonitorDistanceCm  int
	HasAdjustableChair bool
	HasFootrest        bool
}

// ExportFile is a rendered report ready to be sent or stored.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

func resultOf(err error) string {
	var verr *entity.ValidationError
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrWorkstationNotFound):
		return metrics.ResultNotFound
	case errors.As(err, &verr), errors.Is(err, ErrUnsupportedFormat):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}

func (s *Service) observe(op string, start time.Time, err error) {
	metrics.ObserveOperation(op, resultOf(err), time.Since(start))
}

func (s *Service) GetByID(ctx context.Context, id int64) (w *entity.Workstation, err error) {
	defer func(start time.Time) { s.observe("get", start, err) }(time.Now())

	var gen uint64
	if s.Cache != nil {
		cached, ok, cErr := s.Cache.Get(ctx, id)
		if cErr != nil {
			s.warn("cache", "cache get failed", cErr, id)
		}
		metrics.IncCacheLookup(ok)
		if ok {
			return cached, nil
		}
		gen = s.generation(id)
	}

	w, err = s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrWorkstationNotFound
		}
		helpers.LogError(s.Logger, "get workstation failed", err, logrus.Fields{"workstation_id": id})
		return nil, fmt.Errorf("get workstation %d: %w", id, err)
	}
	s.fillCache(ctx, w, gen)
	return w, nil
}

func (s *Service) Search(ctx context.Context, f repo.SearchFilter) (page *repo.Page, err error) {
	defer func(start time.Time) { s.observe("search", start, err) }(time.Now())

	page, err = s.Repo.Search(ctx, f)
	if err != nil {
		helpers.LogError(s.Logger, "search workstations failed", err, logrus.Fields{
			"sort_by":     f.SortKey(),
			"page_number": f.PageNumber,
			"page_size":   f.PageSize(),
		})
		return nil, fmt.Errorf("search workstations: %w", err)
	}
	return page, nil
}

func (s *Service) Create(ctx context.Context, in WorkstationInput) (w *entity.Workstation, err error) {
	defer func(start time.Time) { s.observe("create", start, err) }(time.Now())

	w, err = entity.NewWorkstation(in.Name, in.EmployeeName, in.Department, in.MonitorDistanceCm, in.HasAdjustableChair, in.HasFootrest)
	if err != nil {
		return nil, err
	}
	if err = s.Repo.Create(ctx, w); err != nil {
		helpers.LogError(s.Logger, "create workstation failed", err, nil)
		return nil, fmt.Errorf("create workstation: %w", err)
	}
	metrics.IncRiskEvaluation(w.RiskLevel().String())
	helpers.LogInfo(s.Logger, "workstation created", logrus.Fields{"workstation_id": w.ID, "risk_level": w.RiskLevel().String()})

	s.afterWrite(ctx, event.WorkstationCreated, w, nil)
	return w, nil
}

func (s *Service) Update(ctx context.Context, id int64, in WorkstationInput) (w *entity.Workstation, err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())

	w, err = s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrWorkstationNotFound
		}
		helpers.LogError(s.Logger, "load workstation for update failed", err, logrus.Fields{"workstation_id": id})
		return nil, fmt.Errorf("get workstation %d: %w", id, err)
	}

	previous := w.RiskLevel()
	if err = w.Update(in.Name, in.EmployeeName, in.Department, in.MonitorDistanceCm, in.HasAdjustableChair, in.HasFootrest); err != nil {
		return nil, err
	}
	if err = s.Repo.Update(ctx, w); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrWorkstationNotFound
		}
		helpers.LogError(s.Logger, "update workstation failed", err, logrus.Fields{"workstation_id": id})
		return nil, fmt.Errorf("update workstation %d: %w", id, err)
	}
	metrics.IncRiskEvaluation(w.RiskLevel().String())
	if previous != w.RiskLevel() {
		helpers.LogInfo(s.Logger, "workstation risk changed", logrus.Fields{
			"workstation_id": id,
			"from":           previous.String(),
			"to":             w.RiskLevel().String(),
		})
	}

	s.afterWrite(ctx, event.WorkstationUpdated, w, &previous)
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { s.observe("delete", start, err) }(time.Now())

	if err = s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrWorkstationNotFound
		}
		helpers.LogError(s.Logger, "delete workstation failed", err, logrus.Fields{"workstation_id": id})
		return fmt.Errorf("delete workstation %d: %w", id, err)
	}

	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	s.invalidate(c, id)
	if s.Index != nil {
		if iErr := s.Index.Remove(c, id); iErr != nil {
			s.warn("index", "search index remove failed", iErr, id)
		}
	}
	s.publish(c, event.WorkstationEvent{
		ID:            uuid.NewString(),
		Type:          event.WorkstationDeleted,
		OccurredAt:    time.Now().UTC(),
		WorkstationID: id,
	})
	return nil
}

// Lookup runs a fuzzy full-text query against the search index. Without an
// index it returns no hits.
func (s *Service) Lookup(ctx context.Context, q string, size int) (hits []search.Hit, err error) {
	defer func(start time.Time) { s.observe("lookup", start, err) }(time.Now())

	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []search.Hit{}, nil
	}
	if size <= 0 || size > maxLookupSize {
		size = defaultLookupSize
	}
	hits, err = s.Index.Lookup(ctx, q, size)
	if err != nil {
		helpers.LogError(s.Logger, "lookup workstations failed", err, logrus.Fields{"q": q})
		return nil, fmt.Errorf("lookup workstations: %w", err)
	}
	return hits, nil
}

// Export renders every workstation matching f, ignoring its paging.
func (s *Service) Export(ctx context.Context, f repo.SearchFilter, format string) (file *ExportFile, err error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = report.FormatXLSX
	}
	start := time.Now()
	defer func() {
		metrics.ObserveExport(format, resultOf(err), time.Since(start))
	}()

	if format != report.FormatXLSX && format != report.FormatPDF {
		return nil, ErrUnsupportedFormat
	}

	items, err := s.collect(ctx, f)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var content []byte
	contentType := report.ContentTypeXLSX
	switch format {
	case report.FormatPDF:
		content, err = report.BuildPDF(items, now)
		contentType = report.ContentTypePDF
	default:
		content, err = report.BuildXLSX(items, now)
	}
	if err != nil {
		helpers.LogError(s.Logger, "render report failed", err, logrus.Fields{"format": format})
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("workstations-%s.%s", now.Format("20060102-150405"), format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// PublishReport uploads an XLSX report of f and returns its URL.
func (s *Service) PublishReport(ctx context.Context, f repo.SearchFilter) (url string, err error) {
	defer func(start time.Time) { s.observe("report", start, err) }(time.Now())

	if s.Reports == nil {
		return "", ErrReportsUnavailable
	}
	file, err := s.Export(ctx, f, report.FormatXLSX)
	if err != nil {
		return "", err
	}
	url, err = s.Reports.Save(ctx, report.FormatXLSX, file.ContentType, file.Content)
	if err != nil {
		helpers.LogError(s.Logger, "upload report failed", err, nil)
		return "", fmt.Errorf("upload report: %w", err)
	}
	helpers.LogInfo(s.Logger, "report published", logrus.Fields{"url": url, "bytes": len(file.Content)})
	return url, nil
}

// collect walks the search result page by page in the filter's order.
func (s *Service) collect(ctx context.Context, f repo.SearchFilter) ([]*entity.Workstation, error) {
	f.SetPageSize(repo.MaxPageSize)
	out := make([]*entity.Workstation, 0, repo.MaxPageSize)
	for n := 1; ; n++ {
		f.PageNumber = n
		page, err := s.Search(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		if len(page.Items) < f.PageSize() || len(out) >= page.TotalCount || len(out) >= maxExportRows {
			break
		}
	}
	if len(out) > maxExportRows {
		out = out[:maxExportRows]
	}
	return out, nil
}

func (s *Service) afterWrite(ctx context.Context, kind string, w *entity.Workstation, previous *entity.RiskLevel) {
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()

	s.invalidate(c, w.ID)
	if s.Index != nil {
		if err := s.Index.Index(c, w); err != nil {
			s.warn("index", "search index write failed", err, w.ID)
		}
	}
	s.publish(c, event.WorkstationEvent{
		ID:            uuid.NewString(),
		Type:          kind,
		OccurredAt:    w.LastEvaluationDate(),
		WorkstationID: w.ID,
		PreviousRisk:  previous,
		Snapshot:      event.Snapshot(w),
	})
}

func (s *Service) stripe(id int64) *cacheStripe {
	return &s.stripes[uint64(id)%cacheStripes]
}

func (s *Service) generation(id int64) uint64 {
	st := s.stripe(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.gen
}

// fillCache stores a freshly loaded row unless a write to its stripe happened
// after the load began. Otherwise the row may predate that write.
func (s *Service) fillCache(ctx context.Context, w *entity.Workstation, gen uint64) {
	if s.Cache == nil {
		return
	}
	st := s.stripe(w.ID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.gen != gen {
		return
	}
	c, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := s.Cache.Set(c, w); err != nil {
		s.warn("cache", "cache set failed", err, w.ID)
	}
}

// invalidate drops id from the cache after a write. The next read reloads it.
func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.Cache == nil {
		return
	}
	st := s.stripe(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.gen++
	if err := s.Cache.Delete(ctx, id); err != nil {
		s.warn("cache", "cache delete failed", err, id)
	}
}

func (s *Service) publish(ctx context.Context, ev event.WorkstationEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		helpers.LogWarn(s.Logger, "publish workstation event failed", err, logrus.Fields{
			"event_id":       ev.ID,
			"event_type":     ev.Type,
			"workstation_id": ev.WorkstationID,
		})
		metrics.IncSideEffectError("publish")
	}
}

func (s *Service) warn(kind, msg string, err error, id int64) {
	helpers.LogWarn(s.Logger, msg, err, logrus.Fields{"workstation_id": id})
	metrics.IncSideEffectError(kind)
}
