package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

type payload struct {
	Name              string `json:"name" binding:"text100"`
	MonitorDistanceCm int    `json:"monitorDistanceCm" binding:"monitorcm"`
}

func TestToDetails_UsesJSONNamesAndUnderlyingTags(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&payload{Name: strings.Repeat("x", 101), MonitorDistanceCm: 120})
	require.Error(t, err)
	d := ToDetails(err)
	assert.Equal(t, "must be at most 100 characters long", d["name"])
	assert.Equal(t, "must be less than or equal to 100", d["monitorDistanceCm"])

	err = binding.Validator.ValidateStruct(&payload{MonitorDistanceCm: 10})
	require.Error(t, err)
	d = ToDetails(err)
	assert.Equal(t, "is required", d["name"])
	assert.Equal(t, "must be greater than or equal to 30", d["monitorDistanceCm"])
}

func TestToDetails_DomainValidationError(t *testing.T) {
	var err error = &entity.ValidationError{Field: "department", Message: "must not be blank"}
	assert.Equal(t, map[string]string{"department": "must not be blank"}, ToDetails(err))
}

func TestToDetails_JSONErrors(t *testing.T) {
	var p payload
	err := json.Unmarshal([]byte(`{"monitorDistanceCm":"far"}`), &p)
	assert.Equal(t, map[string]string{"monitorDistanceCm": "must be a valid int"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &p)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	assert.Nil(t, ToDetails(nil))
}
