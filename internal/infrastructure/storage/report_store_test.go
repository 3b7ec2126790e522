package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	p := ObjectPath(time.Date(2025, 5, 2, 23, 0, 0, 0, time.UTC), "xlsx")
	assert.Regexp(t, regexp.MustCompile(`^reports/2025/05/02/[0-9a-f-]{36}\.xlsx$`), p)
}

func TestSave_NotConfigured(t *testing.T) {
	var s *ReportStore
	_, err := s.Save(context.Background(), "xlsx", "x", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewReportStore(nil, "bucket").Save(context.Background(), "xlsx", "x", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
