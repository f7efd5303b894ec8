package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var increment int64 = 1
	if len(args) == 2 {
		if v, ok := args[1].(int64); ok {
			increment = v
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(context.Background(), DefaultConfig("PR"), nil, period)
	require.NoError(t, err)
	assert.Equal(t, "PR-2026-00001", num)

	num, err = svc.GetNextNumber(context.Background(), DefaultConfig("PR"), nil, period)
	require.NoError(t, err)
	assert.Equal(t, "PR-2026-00002", num)
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	opts := &Options{Strategy: StrategyCached, RangeSize: 10}

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		num, err := svc.GetNextNumber(context.Background(), DefaultConfig("PR"), opts, period)
		require.NoError(t, err)
		require.False(t, seen[num], "duplicate number %s", num)
		seen[num] = true
	}

	// 25 numbers from 3 allocations of 10
	assert.Equal(t, int64(30), q.currentValue)
}

func TestGetNextNumber_ResetPeriods(t *testing.T) {
	tests := []struct {
		name        string
		resetPeriod string
		wantKey     string
	}{
		{"yearly", "year", "PR_2026"},
		{"monthly", "month", "PR_2026_03"},
		{"never", "never", "PR"},
	}

	svc := New(&mockQuerier{})
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("PR")
			cfg.ResetPeriod = tt.resetPeriod
			assert.Equal(t, tt.wantKey, svc.buildKey(cfg, period))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	svc := New(&mockQuerier{})
	period := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConfig("PR")
	assert.Equal(t, "PR-2026-00042", svc.formatNumber(cfg, period, 42))

	cfg.IncludeYear = false
	cfg.PadWidth = 3
	assert.Equal(t, "PR-042", svc.formatNumber(cfg, period, 42))
}
