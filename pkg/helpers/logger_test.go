package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "worksafe", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	buf.Reset()
	LogError(l, "save failed", errors.New("boom"), logrus.Fields{"workstation_id": 3})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "save failed", line["msg"])
	assert.Equal(t, "boom", line["error"])
	assert.EqualValues(t, 3, line["workstation_id"])
}

func TestNewLogger_DevelopmentIsVerboseText(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "worksafe", "development")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.True(t, strings.Contains(buf.String(), "logger initialized"))
}

func TestLogHelpers_NilLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"), nil)
		LogWarn(nil, "x", nil, nil)
		LogInfo(nil, "x", nil)
	})
}
