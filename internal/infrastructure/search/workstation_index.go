package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

const requestTimeout = 3 * time.Second

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":                   {"type": "long"},
      "name":                 {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "employee_name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "department":           {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "monitor_distance_cm":  {"type": "integer"},
      "has_adjustable_chair": {"type": "boolean"},
      "has_footrest":         {"type": "boolean"},
      "risk_level":           {"type": "keyword"},
      "is_compliant":         {"type": "boolean"},
      "last_evaluation_date": {"type": "date"}
    }
  }
}`

// Hit is one full-text lookup result.
type Hit struct {
	ID           int64   `json:"id"`
	Score        float64 `json:"score"`
	Name         string  `json:"name"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	RiskLevel    string  `json:"risk_level"`
	IsCompliant  bool    `json:"is_compliant"`
}

// WorkstationIndex mirrors workstations into Elasticsearch for fuzzy lookups.
type WorkstationIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewWorkstationIndex(es *elasticsearch.Client, index string) *WorkstationIndex {
	return &WorkstationIndex{es: es, index: index}
}

func (x *WorkstationIndex) EnsureIndex(ctx context.Context) error {
	return helpers.EnsureIndex(ctx, x.es, x.index, indexMapping)
}

func document(w *entity.Workstation) map[string]any {
	return map[string]any{
		"id":                   w.ID,
		"name":                 w.Name,
		"employee_name":        w.EmployeeName,
		"department":           w.Department,
		"monitor_distance_cm":  w.MonitorDistanceCm,
		"has_adjustable_chair": w.HasAdjustableChair,
		"has_footrest":         w.HasFootrest,
		"risk_level":           w.RiskLevel().String(),
		"is_compliant":         w.IsCompliant(),
		"last_evaluation_date": w.LastEvaluationDate().Format(time.RFC3339Nano),
	}
}

func (x *WorkstationIndex) Index(ctx context.Context, w *entity.Workstation) error {
	b, err := json.Marshal(document(w))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(w.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index workstation %d: %s", w.ID, res.Status())
	}
	return nil
}

func (x *WorkstationIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove workstation %d: %s", id, res.Status())
	}
	return nil
}

// LookupQuery builds the multi_match body used by Lookup.
func LookupQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "employee_name^2", "department"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
}

// Lookup runs a fuzzy multi_match over name, employee and department.
func (x *WorkstationIndex) Lookup(ctx context.Context, q string, size int) ([]Hit, error) {
	b, err := json.Marshal(LookupQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("lookup workstations: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64 `json:"_score"`
				Source Hit     `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]Hit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hit := h.Source
		hit.Score = h.Score
		out = append(out, hit)
	}
	return out, nil
}
