package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

func sample() *entity.Workstation {
	at := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	return entity.RestoreWorkstation(9, "Desk", "Ana", "Eng", 80, false, true, entity.RiskHigh, at)
}

func TestLRUCache_SetGetDelete(t *testing.T) {
	c := NewLRUCache(2, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	w := sample()
	require.NoError(t, c.Set(ctx, w))

	got, ok, err := c.Get(ctx, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, *w, *got)

	got.Name = "changed"
	again, _, _ := c.Get(ctx, 9)
	assert.Equal(t, "Desk", again.Name)

	require.NoError(t, c.Delete(ctx, 9))
	_, ok, _ = c.Get(ctx, 9)
	assert.False(t, ok)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(1, time.Minute)
	ctx := context.Background()

	first := sample()
	second := entity.RestoreWorkstation(10, "Other", "Bob", "Ops", 50, true, true, entity.RiskLow, time.Now().UTC())
	require.NoError(t, c.Set(ctx, first))
	require.NoError(t, c.Set(ctx, second))

	_, ok, _ := c.Get(ctx, first.ID)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, second.ID)
	assert.True(t, ok)
}

func TestLRUCache_EntriesExpire(t *testing.T) {
	c := NewLRUCache(4, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, sample()))

	_, ok, _ := c.Get(ctx, 9)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, 9)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestRecord_JSONRoundTripKeepsDerivedFields(t *testing.T) {
	w := sample()
	b, err := json.Marshal(toRecord(w))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"risk_level":"High"`)

	var rec record
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, *w, *rec.restore())
}

func TestWorkstationKey(t *testing.T) {
	assert.Equal(t, "workstation:42", workstationKey(42))
}
