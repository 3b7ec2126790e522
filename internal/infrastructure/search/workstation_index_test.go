package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

func TestDocument_CarriesDerivedFields(t *testing.T) {
	at := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	w := entity.RestoreWorkstation(5, "Desk", "Ana", "Eng", 60, true, false, entity.RiskLow, at)

	doc := document(w)
	assert.Equal(t, int64(5), doc["id"])
	assert.Equal(t, "Low", doc["risk_level"])
	assert.Equal(t, true, doc["is_compliant"])
	assert.Equal(t, "2025-02-01T09:30:00Z", doc["last_evaluation_date"])
}

func TestLookupQuery(t *testing.T) {
	b, err := json.Marshal(LookupQuery("ana", 5))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": {"multi_match": {"query": "ana", "fields": ["name^2", "employee_name^2", "department"], "fuzziness": "AUTO"}},
		"size": 5
	}`, string(b))
}

func TestIndexMappingIsValidJSON(t *testing.T) {
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(indexMapping), &m))
	assert.Contains(t, m, "mappings")
}

// stubCluster answers index and search calls and records request bodies by path.
func stubCluster(t *testing.T) (*elasticsearch.Client, map[string]string) {
	t.Helper()
	var mu sync.Mutex
	bodies := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies[r.Method+" "+r.URL.Path] = string(b)
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/_search") {
			_, _ = io.WriteString(w, `{"hits":{"hits":[{"_score":1.5,"_source":{"id":5,"name":"Desk","employee_name":"Ana","department":"Eng","risk_level":"Low","is_compliant":true}}]}}`)
			return
		}
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, bodies
}

func TestWorkstationIndex_IndexAndLookup(t *testing.T) {
	es, bodies := stubCluster(t)
	x := NewWorkstationIndex(es, "workstations")
	ctx := context.Background()

	at := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, x.Index(ctx, entity.RestoreWorkstation(5, "Desk", "Ana", "Eng", 60, true, true, entity.RiskLow, at)))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(bodies["PUT /workstations/_doc/5"]), &doc))
	assert.Equal(t, "Desk", doc["name"])
	assert.Equal(t, "Low", doc["risk_level"])

	hits, err := x.Lookup(ctx, "desk", 3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{ID: 5, Score: 1.5, Name: "Desk", EmployeeName: "Ana", Department: "Eng", RiskLevel: "Low", IsCompliant: true}, hits[0])

	want, err := json.Marshal(LookupQuery("desk", 3))
	require.NoError(t, err)
	assert.JSONEq(t, string(want), bodies["POST /workstations/_search"])
}
